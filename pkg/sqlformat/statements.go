package sqlformat

import (
	"database/sql"
	"strings"
)

// CombineStatements joins statements into one batch. Every statement is
// terminated by "; " and parameters keep their order.
func CombineStatements(statements []Statement) Statement {
	var text strings.Builder
	combined := Statement{Parameters: []Parameter{}, Multiple: true}

	for _, s := range statements {
		text.WriteString(s.SQL)
		text.WriteString("; ")
		combined.Parameters = append(combined.Parameters, s.Parameters...)
	}

	combined.SQL = text.String()
	return combined
}

// Args returns the parameters in a form accepted by database/sql drivers
// with named parameter support.
func (s Statement) Args() []any {
	args := make([]any, 0, len(s.Parameters))
	for _, p := range s.Parameters {
		args = append(args, sql.Named(p.Name, p.Value))
	}
	return args
}
