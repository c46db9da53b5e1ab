package dimension

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/chazu/unitconv/registry"
)

// ---------------------------------------------------------------------------
// Tokenizer: text -> flat token sequence
// ---------------------------------------------------------------------------

type tokenizer struct {
	reg    *registry.Registry
	tokens []Token
	buf    strings.Builder
}

// Tokenize scans text into a flat token sequence. Parenthesized
// subexpressions are tokenized recursively and emitted as one GroupToken.
func Tokenize(reg *registry.Registry, text string) ([]Token, error) {
	t := &tokenizer{reg: reg}

	depth := 0
	var group strings.Builder
	for offset, ch := range text {
		if depth > 0 {
			switch ch {
			case '(':
				depth++
			case ')':
				depth--
				if depth == 0 {
					inner, err := Tokenize(reg, group.String())
					if err != nil {
						return nil, err
					}
					t.tokens = append(t.tokens, &GroupToken{Tokens: inner})
					group.Reset()
					continue
				}
			}
			group.WriteRune(ch)
			continue
		}

		switch {
		case ch == '(':
			if err := t.flush(); err != nil {
				return nil, err
			}
			depth++
		case ch == ')':
			return nil, fmt.Errorf("%w: closing parenthesis at offset %d has no opening one", ErrUnmatchedParenthesis, offset)
		case ch == '*':
			if err := t.emit(OpMultiply); err != nil {
				return nil, err
			}
		case ch == '/':
			if err := t.emit(OpDivide); err != nil {
				return nil, err
			}
		case ch == '^':
			if err := t.emit(OpPower); err != nil {
				return nil, err
			}
		case unicode.IsSpace(ch):
			if err := t.flush(); err != nil {
				return nil, err
			}
		default:
			t.buf.WriteRune(ch)
		}
	}

	if depth > 0 {
		return nil, fmt.Errorf("%w: %d parenthesis left open", ErrUnmatchedParenthesis, depth)
	}
	if err := t.flush(); err != nil {
		return nil, err
	}
	return t.tokens, nil
}

// emit flushes the pending buffer and appends an operator.
func (t *tokenizer) emit(op Op) error {
	if err := t.flush(); err != nil {
		return err
	}
	t.tokens = append(t.tokens, &OpToken{Op: op})
	return nil
}

// flush turns the buffered text into a NumToken or UnitToken.
func (t *tokenizer) flush() error {
	if t.buf.Len() == 0 {
		return nil
	}
	text := t.buf.String()
	t.buf.Reset()

	if v, ok := parseNumber(text); ok {
		t.tokens = append(t.tokens, &NumToken{Value: v})
		return nil
	}

	unit, prefix, ok := t.reg.Resolve(text)
	if !ok {
		return &InvalidTokenError{Text: text}
	}
	t.tokens = append(t.tokens, &UnitToken{Unit: unit, Exponent: prefix.Power})
	return nil
}

// parseNumber accepts only text that starts like a number, so words such as
// "inf" or "nan" stay unit candidates.
func parseNumber(text string) (float64, bool) {
	switch c := text[0]; {
	case c >= '0' && c <= '9', c == '-', c == '+', c == '.':
	default:
		return 0, false
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
