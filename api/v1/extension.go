package v1

import (
	"github.com/kubev2v/odata-sql/internal/models"
	"github.com/kubev2v/odata-sql/pkg/sqlformat"
)

func (r TranslateRequest) ToModel() models.TranslateRequest {
	return models.TranslateRequest{
		Table: r.Table,
		Query: sqlformat.Query{
			Table:             r.Table,
			Filters:           r.Filter,
			Ordering:          r.OrderBy,
			Selections:        r.Select,
			Skip:              r.Skip,
			Take:              r.Top,
			ResultLimit:       r.ResultLimit,
			ID:                r.ID,
			IncludeDeleted:    r.IncludeDeleted,
			InlineCount:       r.InlineCount,
			IncludeTotalCount: r.IncludeTotalCount,
		},
		ParameterPrefix: r.ParameterPrefix,
	}
}

func NewStatement(s sqlformat.Statement) Statement {
	params := make([]Parameter, 0, len(s.Parameters))
	for _, p := range s.Parameters {
		params = append(params, Parameter{
			Name:     p.Name,
			Position: p.Position,
			Value:    p.Value,
			Type:     p.Type,
		})
	}
	return Statement{SQL: s.SQL, Parameters: params}
}

func NewStatements(statements []sqlformat.Statement) []Statement {
	out := make([]Statement, 0, len(statements))
	for _, s := range statements {
		out = append(out, NewStatement(s))
	}
	return out
}

// NewTranslateResponse converts formatter output. With combined set the
// statements are also returned joined into one batch.
func NewTranslateResponse(statements []sqlformat.Statement, combined bool) TranslateResponse {
	resp := TranslateResponse{Statements: NewStatements(statements)}
	if combined {
		c := NewStatement(sqlformat.CombineStatements(statements))
		resp.Combined = &c
	}
	return resp
}

func NewBatchResponse(results []models.BatchResult, reqs []TranslateRequest) BatchResponse {
	resp := BatchResponse{Results: make([]BatchResult, 0, len(results))}
	for i, r := range results {
		if r.Err != nil {
			msg := r.Err.Error()
			resp.Results = append(resp.Results, BatchResult{Error: &msg})
			continue
		}

		tr := NewTranslateResponse(r.Statements, i < len(reqs) && reqs[i].Combined)
		resp.Results = append(resp.Results, BatchResult{Statements: tr.Statements, Combined: tr.Combined})
	}
	return resp
}

func NewTable(t models.Table) Table {
	table := Table{
		Name:          t.Name,
		Flavor:        string(t.Flavor),
		Schema:        t.Schema,
		SoftDelete:    t.SoftDelete,
		StringID:      t.StringID,
		BinaryColumns: t.BinaryColumns,
	}
	if !t.CreatedAt.IsZero() {
		createdAt := t.CreatedAt
		table.CreatedAt = &createdAt
	}
	return table
}

func NewTables(tables []models.Table) []Table {
	out := make([]Table, 0, len(tables))
	for _, t := range tables {
		out = append(out, NewTable(t))
	}
	return out
}

// ToModel converts the body of PUT /tables/:name. The path name wins over
// the body.
func (t Table) ToModel(name string) models.Table {
	return models.Table{
		Name:          name,
		Flavor:        sqlformat.Flavor(t.Flavor),
		Schema:        t.Schema,
		SoftDelete:    t.SoftDelete,
		StringID:      t.StringID,
		BinaryColumns: t.BinaryColumns,
	}
}
