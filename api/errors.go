package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	// Index points at the offending ticket of an order.
	Index *int `json:"index,omitempty"`
}

// writeError maps the domain error taxonomy onto HTTP statuses. Anything
// unrecognised is logged and reported as an opaque 500.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	var (
		bounds     *domain.BoundsError
		uniqueness *domain.UniquenessError
		field      *domain.FieldError
	)

	switch {
	case errors.As(err, &bounds):
		resp := errorResponse{Error: bounds.Error(), Field: bounds.Field}
		if bounds.Index >= 0 {
			resp.Index = &bounds.Index
		}
		c.JSON(http.StatusBadRequest, resp)
	case errors.As(err, &uniqueness):
		c.JSON(http.StatusConflict, errorResponse{Error: uniqueness.Error(), Index: &uniqueness.Index})
	case errors.As(err, &field):
		c.JSON(http.StatusBadRequest, errorResponse{Error: field.Message, Field: field.Field})
	case errors.Is(err, domain.ErrEmptyBatch),
		errors.Is(err, domain.ErrInvalidReference),
		errors.Is(err, domain.ErrInvalidSchedule):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, errNoUser):
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: "not found"})
	default:
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: message})
}
