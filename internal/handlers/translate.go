package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/kubev2v/odata-sql/api/v1"
	"github.com/kubev2v/odata-sql/internal/models"
)

// Health reports liveness
// (GET /health)
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, v1.Health{Status: "ok"})
}

// Translate compiles one OData query into SQL statements
// (POST /translate)
func (h *Handler) Translate(c *gin.Context) {
	var req v1.TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	statements, err := h.translatorSrv.Translate(c.Request.Context(), req.ToModel())
	if err != nil {
		writeError(c, "translate_handler", "failed to translate query", err)
		return
	}

	c.JSON(http.StatusOK, v1.NewTranslateResponse(statements, req.Combined))
}

// TranslateBatch compiles several queries. A failing query is reported in
// its own result.
// (POST /translate/batch)
func (h *Handler) TranslateBatch(c *gin.Context) {
	var req v1.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	reqs := make([]models.TranslateRequest, 0, len(req.Requests))
	for _, r := range req.Requests {
		reqs = append(reqs, r.ToModel())
	}

	results, err := h.translatorSrv.TranslateBatch(c.Request.Context(), reqs)
	if err != nil {
		writeError(c, "translate_handler", "failed to translate batch", err)
		return
	}

	c.JSON(http.StatusOK, v1.NewBatchResponse(results, req.Requests))
}

// Filter renders only the WHERE condition
// (POST /filter)
func (h *Handler) Filter(c *gin.Context) {
	var req v1.TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	statement, err := h.translatorSrv.Filter(c.Request.Context(), req.ToModel())
	if err != nil {
		writeError(c, "translate_handler", "failed to translate filter", err)
		return
	}

	c.JSON(http.StatusOK, v1.NewStatement(statement))
}
