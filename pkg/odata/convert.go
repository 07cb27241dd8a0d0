package odata

import (
	"encoding/base64"
	"strings"

	srvErrors "github.com/kubev2v/odata-sql/pkg/errors"
)

// versionColumn is always compared as binary.
const versionColumn = "version"

type typeConverter struct {
	Rewriter
	binaryColumns map[string]struct{}
	err           error
}

// ConvertTypes decodes base64 string literals compared against binary
// columns into []byte constants. Column names match case-insensitively and
// the version column is always treated as binary.
func ConvertTypes(e Expression, binaryColumns []string) (Expression, error) {
	c := &typeConverter{binaryColumns: make(map[string]struct{}, len(binaryColumns)+1)}
	c.Self = c

	c.binaryColumns[versionColumn] = struct{}{}
	for _, col := range binaryColumns {
		c.binaryColumns[strings.ToLower(col)] = struct{}{}
	}

	result := Visit(c, e)
	if c.err != nil {
		return nil, c.err
	}

	return result, nil
}

func (c *typeConverter) VisitBinary(e *Binary) Expression {
	left := c.visit(e.Left)
	right := c.visit(e.Right)

	if s, ok := stringConstant(left); ok && c.isBinaryMember(right) {
		left = c.decode(left, s)
	} else if s, ok := stringConstant(right); ok && c.isBinaryMember(left) {
		right = c.decode(right, s)
	}

	if left != e.Left || right != e.Right {
		return &Binary{Left: left, Right: right, Op: e.Op}
	}
	return e
}

func (c *typeConverter) decode(original Expression, s string) Expression {
	value, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		// unpadded input is accepted as well
		value, err = base64.RawStdEncoding.DecodeString(s)
	}
	if err != nil {
		if c.err == nil {
			c.err = srvErrors.NewBadRequestError("'%s' is not a valid base64 binary value", s)
		}
		return original
	}

	return &Constant{Value: value}
}

func (c *typeConverter) isBinaryMember(e Expression) bool {
	m, ok := e.(*Member)
	if !ok || m.Mapped != nil {
		return false
	}
	_, ok = c.binaryColumns[strings.ToLower(m.Name)]
	return ok
}

func stringConstant(e Expression) (string, bool) {
	c, ok := e.(*Constant)
	if !ok {
		return "", false
	}
	s, ok := c.Value.(string)
	return s, ok
}
