package sqlformat

import "fmt"

// Flavor selects the SQL dialect statements are rendered for.
type Flavor string

const (
	MSSQL  Flavor = "mssql"
	SQLite Flavor = "sqlite"
)

// ParseFlavor maps a flavor name to a Flavor. The empty string is mssql.
func ParseFlavor(s string) (Flavor, error) {
	switch Flavor(s) {
	case "", MSSQL:
		return MSSQL, nil
	case SQLite:
		return SQLite, nil
	default:
		return "", fmt.Errorf("unknown flavor %q", s)
	}
}

// InlineCountAllPages requests a count statement alongside the query.
const InlineCountAllPages = "allpages"

// Query describes one OData read. Pointer fields distinguish "not given"
// from zero.
type Query struct {
	Table string
	// Filters is the $filter expression.
	Filters string
	// Ordering is the $orderby list.
	Ordering string
	// Selections is a comma separated column list. Empty selects *.
	Selections string

	Skip        *int64
	Take        *int64
	ResultLimit *int64

	// ID restricts the query to one row. Strings are only accepted as
	// numbers unless the table has string ids.
	ID any

	IncludeDeleted    bool
	InlineCount       string
	IncludeTotalCount bool
}

// TableConfig describes the table a query runs against.
type TableConfig struct {
	// Name overrides Query.Table when set.
	Name   string
	Flavor Flavor
	// Schema is mssql only and defaults to dbo.
	Schema        string
	SoftDelete    bool
	HasStringID   bool
	BinaryColumns []string
}

// Parameter is a value bound to a placeholder of a Statement. Position is
// 1-based and unique across all statements of one Format call.
type Parameter struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
	Value    any    `json:"value"`
	// Type is "float" for real literals and empty otherwise.
	Type string `json:"type,omitempty"`
}

// Statement is one SQL statement and its bound parameters.
type Statement struct {
	SQL        string      `json:"sql"`
	Parameters []Parameter `json:"parameters"`
	Multiple   bool        `json:"multiple"`
}

func (q Query) countRequested() bool {
	return q.InlineCount == InlineCountAllPages || q.IncludeTotalCount
}

func int64Ptr(v int64) *int64 {
	return &v
}
