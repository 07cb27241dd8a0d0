package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	srvErrors "github.com/kubev2v/odata-sql/pkg/errors"
	"github.com/kubev2v/odata-sql/pkg/odata"
)

func isBadRequest(err error) bool {
	return srvErrors.IsBadRequestError(err) ||
		odata.IsParseError(err) ||
		odata.IsArgumentCountError(err) ||
		odata.IsTypeConstructionError(err)
}

// writeError maps err to a status code. Unknown errors are logged and
// answered with msg only.
func writeError(c *gin.Context, handler, msg string, err error) {
	switch {
	case isBadRequest(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case srvErrors.IsResourceNotFoundError(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case srvErrors.IsDuplicateResourceError(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		zap.S().Named(handler).Errorw(msg, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}
