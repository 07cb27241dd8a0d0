package v1

import "time"

// TranslateRequest is the body of POST /translate and POST /filter.
type TranslateRequest struct {
	Table             string `json:"table" binding:"required"`
	Filter            string `json:"filter,omitempty"`
	OrderBy           string `json:"orderBy,omitempty"`
	Select            string `json:"select,omitempty"`
	Skip              *int64 `json:"skip,omitempty"`
	Top               *int64 `json:"top,omitempty"`
	ResultLimit       *int64 `json:"resultLimit,omitempty"`
	ID                any    `json:"id,omitempty"`
	IncludeDeleted    bool   `json:"includeDeleted,omitempty"`
	InlineCount       string `json:"inlineCount,omitempty" binding:"omitempty,oneof=allpages none"`
	IncludeTotalCount bool   `json:"includeTotalCount,omitempty"`
	ParameterPrefix   string `json:"parameterPrefix,omitempty" binding:"omitempty,alphanum"`
	// Combined adds the statements joined into one batch to the response.
	Combined bool `json:"combined,omitempty"`
}

type Parameter struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
	Value    any    `json:"value"`
	Type     string `json:"type,omitempty"`
}

type Statement struct {
	SQL        string      `json:"sql"`
	Parameters []Parameter `json:"parameters"`
}

type TranslateResponse struct {
	Statements []Statement `json:"statements"`
	Combined   *Statement  `json:"combined,omitempty"`
}

type BatchRequest struct {
	Requests []TranslateRequest `json:"requests" binding:"required,min=1,dive"`
}

type BatchResult struct {
	Statements []Statement `json:"statements,omitempty"`
	Combined   *Statement  `json:"combined,omitempty"`
	Error      *string     `json:"error,omitempty"`
}

type BatchResponse struct {
	Results []BatchResult `json:"results"`
}

// Table is a registered table definition.
type Table struct {
	Name          string     `json:"name"`
	Flavor        string     `json:"flavor" binding:"omitempty,oneof=mssql sqlite"`
	Schema        string     `json:"schema,omitempty"`
	SoftDelete    bool       `json:"softDelete"`
	StringID      bool       `json:"stringId"`
	BinaryColumns []string   `json:"binaryColumns,omitempty"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
}

type Health struct {
	Status string `json:"status"`
}
