package odata

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Expression is a node of the expression tree. Nodes are never mutated after
// construction; rewrites allocate new nodes and share unchanged subtrees.
type Expression interface {
	Accept(v Visitor) Expression
	String() string
}

type BinaryOperator int

const (
	And BinaryOperator = iota
	Or
	Equal
	NotEqual
	LessThan
	LessThanOrEqual
	GreaterThan
	GreaterThanOrEqual
	Add
	Subtract
	Multiply
	Divide
	Modulo
)

var binaryOperatorNames = map[BinaryOperator]string{
	And:                "and",
	Or:                 "or",
	Equal:              "eq",
	NotEqual:           "ne",
	LessThan:           "lt",
	LessThanOrEqual:    "le",
	GreaterThan:        "gt",
	GreaterThanOrEqual: "ge",
	Add:                "add",
	Subtract:           "sub",
	Multiply:           "mul",
	Divide:             "div",
	Modulo:             "mod",
}

func (o BinaryOperator) String() string {
	return binaryOperatorNames[o]
}

type UnaryOperator int

const (
	Not UnaryOperator = iota
	Negate
)

// Constant is a literal. Value holds a string, bool, int64, time.Time,
// []byte or nil.
type Constant struct {
	Value any
}

func (e *Constant) Accept(v Visitor) Expression { return v.VisitConstant(e) }

func (e *Constant) String() string {
	switch val := e.Value.(type) {
	case nil:
		return "null"
	case string:
		return "'" + strings.ReplaceAll(val, "'", "''") + "'"
	case time.Time:
		return "datetime'" + val.Format(time.RFC3339Nano) + "'"
	case []byte:
		return "binary'" + base64.StdEncoding.EncodeToString(val) + "'"
	default:
		return fmt.Sprint(val)
	}
}

// FloatConstant is a real literal. It stays distinct from Constant so the
// bound parameter keeps a floating point type.
type FloatConstant struct {
	Value float64
}

func (e *FloatConstant) Accept(v Visitor) Expression { return v.VisitFloatConstant(e) }

func (e *FloatConstant) String() string {
	return strconv.FormatFloat(e.Value, 'f', -1, 64) + "d"
}

type Binary struct {
	Left  Expression
	Right Expression
	Op    BinaryOperator
}

func (e *Binary) Accept(v Visitor) Expression { return v.VisitBinary(e) }

func (e *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left, e.Op, e.Right)
}

type Unary struct {
	Operand Expression
	Op      UnaryOperator
}

func (e *Unary) Accept(v Visitor) Expression { return v.VisitUnary(e) }

func (e *Unary) String() string {
	if e.Op == Negate {
		return fmt.Sprintf("-(%s)", e.Operand)
	}
	return fmt.Sprintf("not(%s)", e.Operand)
}

// Convert is an explicit SQL cast inserted by rewrite passes.
type Convert struct {
	Type    string
	Operand Expression
}

func (e *Convert) Accept(v Visitor) Expression { return v.VisitConvert(e) }

func (e *Convert) String() string {
	return fmt.Sprintf("convert(%s, %s)", e.Type, e.Operand)
}

// Member is either a plain property access (Name) or a built-in property
// such as length (Mapped).
type Member struct {
	Instance Expression
	Name     string
	Mapped   *MappedMemberInfo
}

func (e *Member) Accept(v Visitor) Expression { return v.VisitMember(e) }

func (e *Member) String() string {
	if e.Mapped != nil {
		return fmt.Sprintf("%s(%s)", e.Mapped.Name, e.Instance)
	}
	if _, root := e.Instance.(*Parameter); root || e.Instance == nil {
		return e.Name
	}
	return fmt.Sprintf("%s/%s", e.Instance, e.Name)
}

// FunctionCall is a built-in call. Instance is nil for static functions.
type FunctionCall struct {
	Instance Expression
	Member   *MappedMemberInfo
	Args     []Expression
}

func (e *FunctionCall) Accept(v Visitor) Expression { return v.VisitFunctionCall(e) }

// String renders the call with the bound instance first.
func (e *FunctionCall) String() string {
	parts := make([]string, 0, len(e.Args)+1)
	if e.Instance != nil {
		parts = append(parts, e.Instance.String())
	}
	for _, arg := range e.Args {
		parts = append(parts, arg.String())
	}
	name := ""
	if e.Member != nil {
		name = e.Member.Name
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(parts, ", "))
}

// Parameter is the implicit root entity every bare member resolves against.
type Parameter struct{}

func (e *Parameter) Accept(v Visitor) Expression { return v.VisitParameter(e) }

func (e *Parameter) String() string {
	return "$it"
}

// OrderBy is one entry of an ordering list.
type OrderBy struct {
	Selector  Expression
	Ascending bool
}

func (o OrderBy) String() string {
	if o.Ascending {
		return o.Selector.String()
	}
	return o.Selector.String() + " desc"
}
