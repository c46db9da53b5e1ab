package dimension

// ---------------------------------------------------------------------------
// Treeifier: token sequence -> binary tree
// ---------------------------------------------------------------------------

// Treeify reduces a token sequence to a single tree. The leftmost operator
// of the highest precedence still present is reduced first, which makes
// every operator left-associative: m/s/s becomes ((m / s) / s).
func Treeify(tokens []Token) (Token, error) {
	switch len(tokens) {
	case 0:
		return nil, ErrEmptyExpression
	case 1:
		return operand(tokens[0])
	}

	work := make([]Token, len(tokens))
	copy(work, tokens)

	// remaining unreduced operators per precedence tier
	var tiers [maxPrecedence + 1]int
	for _, tok := range work {
		if op, ok := tok.(*OpToken); ok {
			tiers[op.Op.Precedence()]++
		}
	}

	for len(work) > 1 {
		level := highestTier(&tiers)
		if level == 0 {
			return nil, malformed("missing operator between %s and %s", work[0], work[1])
		}

		i := leftmostAt(work, level)
		op := work[i].(*OpToken).Op
		if i == 0 || i == len(work)-1 {
			return nil, malformed("operator %s is missing an operand", op)
		}

		left, err := operand(work[i-1])
		if err != nil {
			return nil, err
		}
		right, err := operand(work[i+1])
		if err != nil {
			return nil, err
		}

		node := &TreeToken{Op: op, Left: left, Right: right}
		work = append(work[:i-1], append([]Token{node}, work[i+2:]...)...)
		tiers[level]--
	}

	return work[0], nil
}

// operand resolves a token used as an operator argument. Groups are
// treeified on demand; a bare operator cannot be an operand.
func operand(tok Token) (Token, error) {
	switch tok := tok.(type) {
	case *GroupToken:
		return Treeify(tok.Tokens)
	case *OpToken:
		return nil, malformed("operator %s where an operand was expected", tok.Op)
	default:
		return tok, nil
	}
}

func highestTier(tiers *[maxPrecedence + 1]int) int {
	for level := maxPrecedence; level > 0; level-- {
		if tiers[level] > 0 {
			return level
		}
	}
	return 0
}

func leftmostAt(work []Token, level int) int {
	for i, tok := range work {
		if op, ok := tok.(*OpToken); ok && op.Op.Precedence() == level {
			return i
		}
	}
	return -1
}
