package sqlformat

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/kubev2v/odata-sql/pkg/odata"
)

// unboundedTake stands in for a missing take when skip is given.
const unboundedTake int64 = 9007199254740992

type dialect interface {
	flavor() Flavor
	// noLimit is the take used when only skip is given.
	noLimit() int64
	// supportsPaging reports whether skip and take are rendered as a page of
	// an ordered result rather than as a plain limit.
	supportsPaging() bool
	// limit applies a row cap and offset to a non paged select.
	limit(b sq.SelectBuilder, limit, skip int64) sq.SelectBuilder

	concat(f *Formatter, left, right odata.Expression)
	indexOf(f *Formatter, instance, sub odata.Expression)
	substringFunction() string
}

func newDialect(flavor Flavor) (dialect, error) {
	switch flavor {
	case "", MSSQL:
		return mssqlDialect{}, nil
	case SQLite:
		return sqliteDialect{}, nil
	default:
		return nil, fmt.Errorf("unknown flavor %q", flavor)
	}
}

type mssqlDialect struct{}

func (mssqlDialect) flavor() Flavor { return MSSQL }
func (mssqlDialect) noLimit() int64 { return unboundedTake }
func (mssqlDialect) supportsPaging() bool { return true }
func (mssqlDialect) substringFunction() string { return "SUBSTRING" }

func (mssqlDialect) limit(b sq.SelectBuilder, limit, _ int64) sq.SelectBuilder {
	if limit < 0 {
		return b
	}
	return b.Options(fmt.Sprintf("TOP %d", limit))
}

// concat adds the operands, converting whichever one is not a string literal.
// One conversion is enough: SQL promotes the other side.
func (mssqlDialect) concat(f *Formatter, left, right odata.Expression) {
	stringType := GetSQLType(MSSQL, "")
	if !isStringConstant(left) {
		left = &odata.Convert{Type: stringType, Operand: left}
	} else if !isStringConstant(right) {
		right = &odata.Convert{Type: stringType, Operand: right}
	}
	f.visit(&odata.Binary{Left: left, Right: right, Op: odata.Add})
}

func (mssqlDialect) indexOf(f *Formatter, instance, sub odata.Expression) {
	f.write("(PATINDEX('%' + ")
	f.visit(sub)
	f.write(" + '%', ")
	f.visit(instance)
	f.write(") - 1)")
}

type sqliteDialect struct{}

func (sqliteDialect) flavor() Flavor { return SQLite }
func (sqliteDialect) noLimit() int64 { return -1 }
func (sqliteDialect) supportsPaging() bool { return false }
func (sqliteDialect) substringFunction() string { return "SUBSTR" }

// limit emits LIMIT whenever there is an offset since sqlite only accepts
// OFFSET after LIMIT. A negative LIMIT means no limit.
func (sqliteDialect) limit(b sq.SelectBuilder, limit, skip int64) sq.SelectBuilder {
	if skip > 0 || limit >= 0 {
		b = b.Suffix(fmt.Sprintf("LIMIT %d", limit))
	}
	if skip > 0 {
		b = b.Suffix(fmt.Sprintf("OFFSET %d", skip))
	}
	return b
}

func (sqliteDialect) concat(f *Formatter, left, right odata.Expression) {
	f.write("(")
	f.visit(left)
	f.write(" || ")
	f.visit(right)
	f.write(")")
}

func (sqliteDialect) indexOf(f *Formatter, instance, sub odata.Expression) {
	f.write("(INSTR(")
	f.visit(instance)
	f.write(", ")
	f.visit(sub)
	f.write(") - 1)")
}

func isStringConstant(e odata.Expression) bool {
	c, ok := e.(*odata.Constant)
	if !ok {
		return false
	}
	_, ok = c.Value.(string)
	return ok
}
