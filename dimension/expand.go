package dimension

import (
	"fmt"
	"math"

	"github.com/chazu/unitconv/registry"
)

// MaxPower bounds the magnitude of a unit's power. Conversion applies a
// unit once per unit of power, so larger powers are rejected while parsing.
const MaxPower = 100

// Unit is one resolved unit of an expanded expression.
type Unit struct {
	Conversion *registry.Unit
	Power      float64 // algebraic exponent from the expression
	Exponent   int     // power of ten from an SI prefix
}

// ---------------------------------------------------------------------------
// Expander: tree -> flat unit list
// ---------------------------------------------------------------------------

// Expand walks a tree produced by Treeify and returns its units in the order
// they appear. Repeated units are not merged.
func Expand(tree Token) ([]Unit, error) {
	var out []Unit
	if err := expand(tree, 1, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func expand(tok Token, power float64, out *[]Unit) error {
	switch tok := tok.(type) {
	case *TreeToken:
		switch tok.Op {
		case OpPower:
			n, ok := tok.Right.(*NumToken)
			if !ok {
				return fmt.Errorf("%w, got %s", ErrInvalidExponent, tok.Right)
			}
			p := power * n.Value
			if !(math.Abs(p) <= MaxPower) {
				return fmt.Errorf("%w, power %s is out of range ±%d", ErrInvalidExponent, formatNumber(p), MaxPower)
			}
			return expand(tok.Left, p, out)
		case OpDivide:
			if err := expand(tok.Left, power, out); err != nil {
				return err
			}
			return expand(tok.Right, -power, out)
		default:
			if err := expand(tok.Left, power, out); err != nil {
				return err
			}
			return expand(tok.Right, power, out)
		}

	case *UnitToken:
		*out = append(*out, Unit{Conversion: tok.Unit, Power: power, Exponent: tok.Exponent})
		return nil

	case *GroupToken:
		for _, inner := range tok.Tokens {
			if err := expand(inner, power, out); err != nil {
				return err
			}
		}
		return nil

	case *NumToken:
		return malformed("number %s outside an exponent", tok)

	case *OpToken:
		return malformed("unreduced operator %s", tok.Op)

	case nil:
		return ErrEmptyExpression
	}
	return malformed("unexpected token %T", tok)
}
