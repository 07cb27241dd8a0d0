package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	v1 "github.com/kubev2v/odata-sql/api/v1"
	"github.com/kubev2v/odata-sql/internal/models"
	"github.com/kubev2v/odata-sql/pkg/sqlformat"
)

// ListTables returns every registered table
// (GET /tables)
func (h *Handler) ListTables(c *gin.Context) {
	tables, err := h.tableSrv.List(c.Request.Context())
	if err != nil {
		writeError(c, "tables_handler", "failed to list tables", err)
		return
	}

	c.JSON(http.StatusOK, v1.NewTables(tables))
}

// GetTable returns one table definition
// (GET /tables/{name})
func (h *Handler) GetTable(c *gin.Context) {
	table, err := h.tableSrv.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		writeError(c, "tables_handler", "failed to get table", err)
		return
	}

	c.JSON(http.StatusOK, v1.NewTable(*table))
}

// PutTable creates or replaces a table definition
// (PUT /tables/{name})
func (h *Handler) PutTable(c *gin.Context) {
	var req v1.Table
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	name := c.Param("name")
	created, err := h.tableSrv.Save(c.Request.Context(), req.ToModel(name))
	if err != nil {
		writeError(c, "tables_handler", "failed to save table", err)
		return
	}

	table, err := h.tableSrv.Get(c.Request.Context(), name)
	if err != nil {
		writeError(c, "tables_handler", "failed to get table", err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, v1.NewTable(*table))
}

// DeleteTable removes a table definition
// (DELETE /tables/{name})
func (h *Handler) DeleteTable(c *gin.Context) {
	if err := h.tableSrv.Delete(c.Request.Context(), c.Param("name")); err != nil {
		writeError(c, "tables_handler", "failed to delete table", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// QueryTable translates the OData system query options of the URL against
// a registered table
// (GET /tables/{name}/query)
func (h *Handler) QueryTable(c *gin.Context) {
	name := c.Param("name")
	if _, err := h.tableSrv.Get(c.Request.Context(), name); err != nil {
		writeError(c, "tables_handler", "failed to get table", err)
		return
	}

	query, err := bindQueryOptions(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	query.Table = name

	statements, err := h.translatorSrv.Translate(c.Request.Context(), models.TranslateRequest{
		Table: name,
		Query: query,
	})
	if err != nil {
		writeError(c, "tables_handler", "failed to translate query", err)
		return
	}

	c.JSON(http.StatusOK, v1.NewTranslateResponse(statements, false))
}

// bindQueryOptions reads the system query options. Optional parameters
// bind into pointers.
func bindQueryOptions(c *gin.Context) (sqlformat.Query, error) {
	var q sqlformat.Query
	var filter, orderBy, selection, inlineCnt *string
	params := c.Request.URL.Query()

	strs := []struct {
		name string
		dest **string
	}{
		{"$filter", &filter},
		{"$orderby", &orderBy},
		{"$select", &selection},
		{"$inlinecount", &inlineCnt},
	}
	for _, s := range strs {
		if err := runtime.BindQueryParameter("form", true, false, s.name, params, s.dest); err != nil {
			return q, err
		}
	}
	if err := runtime.BindQueryParameter("form", true, false, "$skip", params, &q.Skip); err != nil {
		return q, err
	}
	if err := runtime.BindQueryParameter("form", true, false, "$top", params, &q.Take); err != nil {
		return q, err
	}

	q.Filters = deref(filter)
	q.Ordering = deref(orderBy)
	q.Selections = deref(selection)
	q.InlineCount = deref(inlineCnt)

	return q, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
