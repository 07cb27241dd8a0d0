package odata

type booleanizer struct {
	Rewriter
}

// Booleanize rewrites e so every operand of and/or/not, and the result
// itself, is a SQL predicate. Non-predicates x become (x eq true), and
// comparisons of a predicate with a true/false literal are folded away.
func Booleanize(e Expression) Expression {
	if e == nil {
		return nil
	}

	b := &booleanizer{}
	b.Self = b

	return ensureBoolean(Visit(b, e))
}

func (b *booleanizer) VisitUnary(e *Unary) Expression {
	operand := b.visit(e.Operand)
	if operand == nil {
		return e
	}

	if e.Op == Not {
		operand = ensureBoolean(operand)
	}

	if operand != e.Operand {
		return &Unary{Operand: operand, Op: e.Op}
	}
	return e
}

func (b *booleanizer) VisitBinary(e *Binary) Expression {
	left := b.visit(e.Left)
	right := b.visit(e.Right)

	switch e.Op {
	case And, Or:
		left = ensureBoolean(left)
		right = ensureBoolean(right)
	case Equal, NotEqual:
		if folded := foldBitComparison(left, right, e.Op == NotEqual); folded != nil {
			return folded
		}
	}

	if left != e.Left || right != e.Right {
		return &Binary{Left: left, Right: right, Op: e.Op}
	}
	return e
}

// foldBitComparison turns (pred eq true) into pred and (pred eq false) into
// not(pred), in either operand order. ne inverts the sense. It returns nil
// when the pattern does not apply.
func foldBitComparison(left, right Expression, negate bool) Expression {
	pred, bit := left, right
	if !IsBooleanExpression(pred) || !isBitConstant(bit) {
		pred, bit = right, left
		if !IsBooleanExpression(pred) || !isBitConstant(bit) {
			return nil
		}
	}

	if bit.(*Constant).Value.(bool) != negate {
		return pred
	}
	return &Unary{Operand: pred, Op: Not}
}

func isBitConstant(e Expression) bool {
	c, ok := e.(*Constant)
	if !ok {
		return false
	}
	_, ok = c.Value.(bool)
	return ok
}

func ensureBoolean(e Expression) Expression {
	if IsBooleanExpression(e) {
		return e
	}
	return &Binary{Left: e, Right: &Constant{Value: true}, Op: Equal}
}

// IsBooleanExpression reports whether e renders as a SQL predicate.
func IsBooleanExpression(e Expression) bool {
	switch n := e.(type) {
	case *Binary:
		switch n.Op {
		case And, Or, Equal, NotEqual, LessThan, LessThanOrEqual, GreaterThan, GreaterThanOrEqual:
			return true
		}
	case *Unary:
		return n.Op == Not
	case *FunctionCall:
		return n.Member != nil && n.Member.IsBooleanFunction()
	}
	return false
}
