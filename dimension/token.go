package dimension

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chazu/unitconv/registry"
)

// ---------------------------------------------------------------------------
// Operators
// ---------------------------------------------------------------------------

// Op is a binary operator in a unit expression.
type Op int

const (
	OpMultiply Op = iota + 1
	OpDivide
	OpPower
)

// maxPrecedence is the highest value returned by Op.Precedence.
const maxPrecedence = 3

var opNames = map[Op]string{
	OpMultiply: "*",
	OpDivide:   "/",
	OpPower:    "^",
}

func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// Precedence returns the binding strength of o. Higher binds tighter; every
// operator is left-associative.
func (o Op) Precedence() int {
	switch o {
	case OpPower:
		return 3
	case OpMultiply, OpDivide:
		return 2
	}
	return 0
}

// ---------------------------------------------------------------------------
// Tokens
// ---------------------------------------------------------------------------

// Token is one node of a tokenized or treeified unit expression. The set of
// implementations is closed: UnitToken, NumToken, OpToken, GroupToken and
// TreeToken.
type Token interface {
	fmt.Stringer
	token() // marker method
}

// UnitToken is a resolved unit occurrence. Exponent is the power of ten
// contributed by an SI prefix, 0 when the unit was written without one.
type UnitToken struct {
	Unit     *registry.Unit
	Exponent int
}

// NumToken is a numeric literal. It is only meaningful as the right operand
// of a power.
type NumToken struct {
	Value float64
}

// OpToken is an operator that has not been reduced into a TreeToken yet.
type OpToken struct {
	Op Op
}

// GroupToken holds the tokens of a parenthesized subexpression.
type GroupToken struct {
	Tokens []Token
}

// TreeToken is a binary node produced by Treeify.
type TreeToken struct {
	Op    Op
	Left  Token
	Right Token
}

func (*UnitToken) token()  {}
func (*NumToken) token()   {}
func (*OpToken) token()    {}
func (*GroupToken) token() {}
func (*TreeToken) token()  {}

func (t *UnitToken) String() string {
	if t.Exponent != 0 {
		return fmt.Sprintf("%se%d", t.Unit.Name, t.Exponent)
	}
	return t.Unit.Name
}

func (t *NumToken) String() string {
	return formatNumber(t.Value)
}

func (t *OpToken) String() string {
	return t.Op.String()
}

func (t *GroupToken) String() string {
	parts := make([]string, len(t.Tokens))
	for i, tok := range t.Tokens {
		parts[i] = tok.String()
	}
	return "{" + strings.Join(parts, " ") + "}"
}

func (t *TreeToken) String() string {
	return fmt.Sprintf("(%s %s %s)", t.Left, t.Op, t.Right)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
