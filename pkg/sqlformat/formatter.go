package sqlformat

import (
	"fmt"
	"strconv"
	"strings"

	sq "github.com/Masterminds/squirrel"
	srvErrors "github.com/kubev2v/odata-sql/pkg/errors"
	"github.com/kubev2v/odata-sql/pkg/odata"
	"go.uber.org/zap"
)

const defaultParameterPrefix = "p"

// Formatter translates queries for one table. Its parameter counter and SQL
// buffer are per call state, so a Formatter must not be shared between
// goroutines or reused across Format calls.
type Formatter struct {
	cfg     TableConfig
	dialect dialect

	prefix      string
	offsetFetch bool

	sql         strings.Builder
	params      []Parameter
	paramNumber int
	err         error
}

type Option func(*Formatter)

// WithParameterPrefix names parameters {prefix}1, {prefix}2, ... instead of
// p1, p2, ...
func WithParameterPrefix(prefix string) Option {
	return func(f *Formatter) {
		if prefix != "" {
			f.prefix = prefix
		}
	}
}

// WithOffsetFetchPaging renders mssql pages with OFFSET ... FETCH NEXT
// instead of a ROW_NUMBER window.
func WithOffsetFetchPaging() Option {
	return func(f *Formatter) {
		f.offsetFetch = true
	}
}

func NewFormatter(cfg TableConfig, opts ...Option) (*Formatter, error) {
	d, err := newDialect(cfg.Flavor)
	if err != nil {
		return nil, srvErrors.NewUnsupportedFlavorError(string(cfg.Flavor))
	}

	f := &Formatter{cfg: cfg, dialect: d, prefix: defaultParameterPrefix}
	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

// Format translates query into a SELECT statement, followed by a COUNT
// statement when an inline count is requested.
func Format(query Query, cfg TableConfig, opts ...Option) ([]Statement, error) {
	f, err := NewFormatter(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return f.Format(query)
}

// Filter translates only the WHERE condition of query. The statement is
// empty when the query has no filter.
func Filter(query Query, prefix string, cfg TableConfig) (Statement, error) {
	f, err := NewFormatter(cfg, WithParameterPrefix(prefix))
	if err != nil {
		return Statement{}, err
	}

	sql, err := f.formatFilter(query, "")
	if err != nil {
		return Statement{}, err
	}

	return Statement{SQL: sql, Parameters: f.takeParameters(), Multiple: true}, nil
}

func (f *Formatter) Format(query Query) ([]Statement, error) {
	if err := validatePaging(query); err != nil {
		return nil, err
	}

	if f.cfg.Name != "" {
		query.Table = f.cfg.Name
	}

	if query.Skip != nil && *query.Skip > 0 && query.Take == nil {
		query.Take = int64Ptr(f.dialect.noLimit())
	}

	sql, err := f.formatQuery(query)
	if err != nil {
		return nil, err
	}
	statements := []Statement{{SQL: sql, Parameters: f.takeParameters(), Multiple: true}}

	if query.countRequested() {
		sql, err := f.formatCountQuery(query)
		if err != nil {
			return nil, err
		}
		statements = append(statements, Statement{SQL: sql, Parameters: f.takeParameters(), Multiple: true})
	}

	zap.S().Named("sqlformat").Debugw("formatted query",
		"table", query.Table, "flavor", f.dialect.flavor(), "statements", len(statements))

	return statements, nil
}

func validatePaging(query Query) error {
	values := []struct {
		name  string
		value *int64
	}{
		{"skip", query.Skip},
		{"take", query.Take},
		{"result limit", query.ResultLimit},
	}

	for _, v := range values {
		if v.value != nil && *v.value < 0 {
			return srvErrors.NewBadRequestError("%s must not be negative: %d", v.name, *v.value)
		}
	}
	return nil
}

func (f *Formatter) formatQuery(query Query) (string, error) {
	if f.dialect.supportsPaging() && query.Skip != nil && query.Take != nil {
		if f.offsetFetch {
			return f.formatOffsetFetchQuery(query)
		}
		return f.formatPagedQuery(query)
	}

	selection, err := f.formatSelection(query.Selections, "")
	if err != nil {
		return "", err
	}

	table, err := f.tableName(query.Table)
	if err != nil {
		return "", err
	}

	filter, err := f.formatFilter(query, "")
	if err != nil {
		return "", err
	}

	ordering, err := f.formatOrderBy(query, "")
	if err != nil {
		return "", err
	}

	var skip int64
	if query.Skip != nil {
		skip = *query.Skip
	}

	b := sq.Select(selection...).From(table).Where(filter)
	b = f.dialect.limit(b, effectiveLimit(query), skip)
	if ordering != "" {
		b = b.OrderBy(ordering)
	}

	return toSQL(b)
}

// effectiveLimit is the smaller of take and the result limit, or -1 when
// neither is set. A zero result limit counts as unset.
func effectiveLimit(query Query) int64 {
	resultLimit := int64(-1)
	if query.ResultLimit != nil && *query.ResultLimit > 0 {
		resultLimit = *query.ResultLimit
	}

	if query.Take != nil && *query.Take >= 0 {
		if resultLimit >= 0 {
			return min(resultLimit, *query.Take)
		}
		return *query.Take
	}

	return resultLimit
}

// formatPagedQuery numbers the ordered rows in a subquery and selects the
// requested range. Filter and ordering default to (1 = 1) and [id] so the
// page is deterministic.
func (f *Formatter) formatPagedQuery(query Query) (string, error) {
	selection, err := f.formatSelection(query.Selections, "")
	if err != nil {
		return "", err
	}

	aliased := []string{"*"}
	if query.Selections != "" {
		aliased, err = f.formatSelection(query.Selections, "[t1].")
		if err != nil {
			return "", err
		}
		aliased = append([]string{"[t1].[ROW_NUMBER]"}, aliased...)
	}

	table, err := f.tableName(query.Table)
	if err != nil {
		return "", err
	}

	filter, err := f.formatFilter(query, "(1 = 1)")
	if err != nil {
		return "", err
	}

	ordering, err := f.formatOrderBy(query, "[id]")
	if err != nil {
		return "", err
	}

	skip, take := *query.Skip, *query.Take

	rows := sq.Select(fmt.Sprintf("ROW_NUMBER() OVER (ORDER BY %s) AS [ROW_NUMBER]", ordering)).
		Columns(selection...).
		From(table).
		Where(filter)

	b := sq.Select(aliased...).
		FromSelect(rows, "[t1]").
		Where(fmt.Sprintf("[t1].[ROW_NUMBER] BETWEEN %d + 1 AND %d + %d", skip, skip, take)).
		OrderBy("[t1].[ROW_NUMBER]")

	return toSQL(b)
}

func (f *Formatter) formatOffsetFetchQuery(query Query) (string, error) {
	selection, err := f.formatSelection(query.Selections, "")
	if err != nil {
		return "", err
	}

	table, err := f.tableName(query.Table)
	if err != nil {
		return "", err
	}

	filter, err := f.formatFilter(query, "(1 = 1)")
	if err != nil {
		return "", err
	}

	ordering, err := f.formatOrderBy(query, "[id]")
	if err != nil {
		return "", err
	}

	b := sq.Select(selection...).
		From(table).
		Where(filter).
		OrderBy(ordering).
		Suffix(fmt.Sprintf("OFFSET %d ROWS FETCH NEXT %d ROWS ONLY", *query.Skip, *query.Take))

	return toSQL(b)
}

// formatCountQuery counts the rows matching the same filter. Parameter
// numbering continues from the primary statement.
func (f *Formatter) formatCountQuery(query Query) (string, error) {
	table, err := f.tableName(query.Table)
	if err != nil {
		return "", err
	}

	filter, err := f.formatFilter(query, "")
	if err != nil {
		return "", err
	}

	return toSQL(sq.Select("COUNT(*) AS [count]").From(table).Where(filter))
}

func (f *Formatter) tableName(table string) (string, error) {
	return FormatTableName(f.dialect.flavor(), f.cfg.Schema, table)
}

func (f *Formatter) formatSelection(selections, prefix string) ([]string, error) {
	if strings.TrimSpace(selections) == "" {
		return []string{"*"}, nil
	}

	var columns []string
	for _, column := range strings.Split(selections, ",") {
		member, err := FormatMember(strings.TrimSpace(column))
		if err != nil {
			return nil, err
		}
		columns = append(columns, prefix+member)
	}

	return columns, nil
}

// formatFilter renders the $filter expression ANDed with the id and soft
// delete conditions. It returns defaultFilter when there is no condition.
func (f *Formatter) formatFilter(query Query, defaultFilter string) (string, error) {
	var filter odata.Expression

	if query.Filters != "" {
		expr, err := odata.Parse(query.Filters)
		if err != nil {
			return "", err
		}
		filter = expr
	}

	if query.ID != nil {
		id, err := f.idConstant(query.ID)
		if err != nil {
			return "", err
		}
		filter = and(filter, &odata.Binary{Left: &odata.Member{Name: "id"}, Right: id, Op: odata.Equal})
	}

	if f.cfg.SoftDelete && !query.IncludeDeleted {
		filter = and(filter, &odata.Binary{
			Left:  &odata.Member{Name: "deleted"},
			Right: &odata.Constant{Value: false},
			Op:    odata.Equal,
		})
	}

	if filter == nil {
		return defaultFilter, nil
	}

	filter, err := f.finalize(filter)
	if err != nil {
		return "", err
	}

	return f.render(filter)
}

// finalize runs the rewrite passes. Booleanize must run first: type
// conversion only looks at comparisons, not at their boolean structure.
func (f *Formatter) finalize(e odata.Expression) (odata.Expression, error) {
	return odata.ConvertTypes(odata.Booleanize(e), f.cfg.BinaryColumns)
}

func (f *Formatter) idConstant(id any) (odata.Expression, error) {
	if f.cfg.HasStringID {
		return &odata.Constant{Value: fmt.Sprint(id)}, nil
	}

	switch v := id.(type) {
	case int:
		return &odata.Constant{Value: int64(v)}, nil
	case int32:
		return &odata.Constant{Value: int64(v)}, nil
	case int64:
		return &odata.Constant{Value: v}, nil
	case float64:
		if v == float64(int64(v)) {
			return &odata.Constant{Value: int64(v)}, nil
		}
		return &odata.FloatConstant{Value: v}, nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, srvErrors.NewBadRequestError("id %q is not a number", v)
		}
		return &odata.Constant{Value: n}, nil
	default:
		return nil, srvErrors.NewBadRequestError("unsupported id type %T", id)
	}
}

func and(left, right odata.Expression) odata.Expression {
	if left == nil {
		return right
	}
	return &odata.Binary{Left: left, Right: right, Op: odata.And}
}

// formatOrderBy renders the $orderby list, or defaultOrder when there is
// none.
func (f *Formatter) formatOrderBy(query Query, defaultOrder string) (string, error) {
	if query.Ordering == "" {
		return defaultOrder, nil
	}

	orderings, err := odata.ParseOrdering(query.Ordering)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(orderings))
	for _, ordering := range orderings {
		sql, err := f.render(ordering.Selector)
		if err != nil {
			return "", err
		}
		if !ordering.Ascending {
			sql += " DESC"
		}
		parts = append(parts, sql)
	}

	return strings.Join(parts, ", "), nil
}

// takeParameters returns the parameters collected since the last call.
// Numbering is not reset.
func (f *Formatter) takeParameters() []Parameter {
	params := f.params
	f.params = nil
	if params == nil {
		params = []Parameter{}
	}
	return params
}

func toSQL(b sq.SelectBuilder) (string, error) {
	sql, _, err := b.ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build statement: %w", err)
	}
	return strings.TrimSpace(sql), nil
}
