// Package handlers adapts the repositories and services to the JSON HTTP
// surface the dashboard front end consumes.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	repo "github.com/akankshagoel28/masterlist/internal/repository/masterdata"
	"github.com/akankshagoel28/masterlist/pkg/clients/masterdata"
)

// respondError maps the error taxonomy onto status codes: guard violations
// are conflicts, unknown records 404, upstream API failures 502 with the
// server message passed through verbatim.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var apiErr *masterdata.APIError

	switch {
	case errors.Is(err, repo.ErrItemHasBOM):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, repo.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &apiErr):
		logger.Warn("upstream api error", zap.Int("status", apiErr.StatusCode), zap.String("message", apiErr.Message))
		c.JSON(http.StatusBadGateway, gin.H{"error": apiErr.Error()})
	default:
		logger.Error("request failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "API request failed"})
	}
}

// respondViolations reports local validation failures. These never reach the
// remote API.
func respondViolations(c *gin.Context, violations []string) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": violations})
}

func idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
