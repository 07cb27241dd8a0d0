package models

import (
	"time"

	"github.com/kubev2v/odata-sql/pkg/sqlformat"
)

// Table is a registered table definition. Queries naming the table are
// translated with its settings.
type Table struct {
	Name          string
	Flavor        sqlformat.Flavor
	Schema        string
	SoftDelete    bool
	StringID      bool
	BinaryColumns []string
	CreatedAt     time.Time
}

// TableConfig returns the formatter settings for the table.
func (t Table) TableConfig() sqlformat.TableConfig {
	return sqlformat.TableConfig{
		Name:          t.Name,
		Flavor:        t.Flavor,
		Schema:        t.Schema,
		SoftDelete:    t.SoftDelete,
		HasStringID:   t.StringID,
		BinaryColumns: t.BinaryColumns,
	}
}

// TranslateRequest is one query against a table, with service level options.
type TranslateRequest struct {
	Table           string
	Query           sqlformat.Query
	ParameterPrefix string
}

// BatchResult is the outcome of one request of a batch.
type BatchResult struct {
	Statements []sqlformat.Statement
	Err        error
}
