package odata

// Visitor has one method per node variant. Each method returns the node that
// replaces the visited one, or the node itself when nothing changed.
type Visitor interface {
	VisitConstant(e *Constant) Expression
	VisitFloatConstant(e *FloatConstant) Expression
	VisitBinary(e *Binary) Expression
	VisitUnary(e *Unary) Expression
	VisitConvert(e *Convert) Expression
	VisitMember(e *Member) Expression
	VisitFunctionCall(e *FunctionCall) Expression
	VisitParameter(e *Parameter) Expression
}

// Visit dispatches e to v. A nil expression visits to nil.
func Visit(v Visitor, e Expression) Expression {
	if e == nil {
		return nil
	}
	return e.Accept(v)
}

// Rewriter is the default traversal: children are visited first and a node
// is rebuilt only when a child comes back as a different node. Passes embed
// it and set Self so the default methods dispatch to their overrides.
type Rewriter struct {
	Self Visitor
}

func (r *Rewriter) self() Visitor {
	if r.Self != nil {
		return r.Self
	}
	return r
}

func (r *Rewriter) visit(e Expression) Expression {
	return Visit(r.self(), e)
}

func (r *Rewriter) VisitConstant(e *Constant) Expression { return e }

func (r *Rewriter) VisitFloatConstant(e *FloatConstant) Expression { return e }

func (r *Rewriter) VisitMember(e *Member) Expression { return e }

func (r *Rewriter) VisitParameter(e *Parameter) Expression { return e }

func (r *Rewriter) VisitBinary(e *Binary) Expression {
	left := r.visit(e.Left)
	right := r.visit(e.Right)
	if left != e.Left || right != e.Right {
		return &Binary{Left: left, Right: right, Op: e.Op}
	}
	return e
}

func (r *Rewriter) VisitUnary(e *Unary) Expression {
	operand := r.visit(e.Operand)
	if operand != e.Operand {
		return &Unary{Operand: operand, Op: e.Op}
	}
	return e
}

func (r *Rewriter) VisitConvert(e *Convert) Expression {
	operand := r.visit(e.Operand)
	if operand != e.Operand {
		return &Convert{Type: e.Type, Operand: operand}
	}
	return e
}

func (r *Rewriter) VisitFunctionCall(e *FunctionCall) Expression {
	updated := false

	instance := r.visit(e.Instance)
	if instance != e.Instance {
		updated = true
	}

	args := make([]Expression, len(e.Args))
	for i, arg := range e.Args {
		args[i] = r.visit(arg)
		if args[i] != arg {
			updated = true
		}
	}

	if updated {
		return &FunctionCall{Instance: instance, Member: e.Member, Args: args}
	}
	return e
}
