package sqlformat

import (
	"fmt"

	srvErrors "github.com/kubev2v/odata-sql/pkg/errors"
	"github.com/kubev2v/odata-sql/pkg/odata"
)

const floatParameterType = "float"

var binaryOperators = map[odata.BinaryOperator]string{
	odata.Equal:              " = ",
	odata.NotEqual:           " != ",
	odata.LessThan:           " < ",
	odata.LessThanOrEqual:    " <= ",
	odata.GreaterThan:        " > ",
	odata.GreaterThanOrEqual: " >= ",
	odata.And:                " AND ",
	odata.Or:                 " OR ",
	odata.Add:                " + ",
	odata.Subtract:           " - ",
	odata.Multiply:           " * ",
	odata.Divide:             " / ",
	odata.Modulo:             " % ",
}

// render writes e as SQL text. Parameters are appended to f.params.
func (f *Formatter) render(e odata.Expression) (string, error) {
	f.sql.Reset()
	f.visit(e)

	if f.err != nil {
		return "", f.err
	}
	return f.sql.String(), nil
}

func (f *Formatter) visit(e odata.Expression) {
	odata.Visit(f, e)
}

func (f *Formatter) write(s string) {
	f.sql.WriteString(s)
}

func (f *Formatter) fail(err error) {
	if f.err == nil {
		f.err = err
	}
}

func (f *Formatter) VisitBinary(e *odata.Binary) odata.Expression {
	left := e.Left
	// modulo needs an exact numeric dividend
	if e.Op == odata.Modulo {
		left = &odata.Convert{Type: "numeric", Operand: left}
	}

	f.write("(")
	f.visit(left)

	if isNull(e.Right) && (e.Op == odata.Equal || e.Op == odata.NotEqual) {
		if e.Op == odata.Equal {
			f.write(" IS NULL")
		} else {
			f.write(" IS NOT NULL")
		}
	} else {
		f.write(binaryOperators[e.Op])
		f.visit(e.Right)
	}

	f.write(")")
	return e
}

func (f *Formatter) VisitConstant(e *odata.Constant) odata.Expression {
	if e.Value == nil {
		f.write("NULL")
		return e
	}
	f.write(f.addParameter(e.Value, ""))
	return e
}

func (f *Formatter) VisitFloatConstant(e *odata.FloatConstant) odata.Expression {
	f.write(f.addParameter(e.Value, floatParameterType))
	return e
}

func (f *Formatter) addParameter(value any, typ string) string {
	f.paramNumber++
	name := fmt.Sprintf("%s%d", f.prefix, f.paramNumber)
	f.params = append(f.params, Parameter{Name: name, Position: f.paramNumber, Value: value, Type: typ})

	return "@" + name
}

// VisitMember writes a bracket quoted column, or the SQL of a mapped member
// such as length. Navigation members (a/b) fail with a BadRequestError
// instead of being reduced to their last segment.
func (f *Formatter) VisitMember(e *odata.Member) odata.Expression {
	if e.Mapped != nil {
		f.formatMappedMember(e.Instance, e.Mapped, nil)
		return e
	}

	if _, root := e.Instance.(*odata.Parameter); !root && e.Instance != nil {
		f.fail(srvErrors.NewBadRequestError("navigation property '%s' is not supported", e))
		return e
	}

	name, err := FormatMember(e.Name)
	if err != nil {
		f.fail(err)
		return e
	}
	f.write(name)

	return e
}

func (f *Formatter) VisitUnary(e *odata.Unary) odata.Expression {
	switch e.Op {
	case odata.Not:
		f.write("NOT ")
		f.visit(e.Operand)
	case odata.Negate:
		f.write("-(")
		f.visit(e.Operand)
		f.write(")")
	}
	return e
}

func (f *Formatter) VisitConvert(e *odata.Convert) odata.Expression {
	f.write("CONVERT(" + e.Type + ", ")
	f.visit(e.Operand)
	f.write(")")
	return e
}

func (f *Formatter) VisitFunctionCall(e *odata.FunctionCall) odata.Expression {
	if e.Member != nil {
		f.formatMappedMember(e.Instance, e.Member, e.Args)
	}
	return e
}

// VisitParameter writes nothing: the root entity has no SQL form of its own.
func (f *Formatter) VisitParameter(e *odata.Parameter) odata.Expression {
	return e
}

func isNull(e odata.Expression) bool {
	c, ok := e.(*odata.Constant)
	return ok && c.Value == nil
}
