package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/kubev2v/odata-sql/internal/models"
	"github.com/kubev2v/odata-sql/pkg/sqlformat"
)

type TranslatorService interface {
	Translate(ctx context.Context, req models.TranslateRequest) ([]sqlformat.Statement, error)
	Filter(ctx context.Context, req models.TranslateRequest) (sqlformat.Statement, error)
	TranslateBatch(ctx context.Context, reqs []models.TranslateRequest) ([]models.BatchResult, error)
}

type TableService interface {
	List(ctx context.Context) ([]models.Table, error)
	Get(ctx context.Context, name string) (*models.Table, error)
	Save(ctx context.Context, table models.Table) (bool, error)
	Delete(ctx context.Context, name string) error
}

type Handler struct {
	translatorSrv TranslatorService
	tableSrv      TableService
}

func New(translatorSrv TranslatorService, tableSrv TableService) *Handler {
	return &Handler{
		translatorSrv: translatorSrv,
		tableSrv:      tableSrv,
	}
}

// RegisterRoutes mounts every endpoint on router.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", h.Health)

	router.POST("/translate", h.Translate)
	router.POST("/translate/batch", h.TranslateBatch)
	router.POST("/filter", h.Filter)

	router.GET("/tables", h.ListTables)
	router.GET("/tables/:name", h.GetTable)
	router.PUT("/tables/:name", h.PutTable)
	router.DELETE("/tables/:name", h.DeleteTable)
	router.GET("/tables/:name/query", h.QueryTable)
}
