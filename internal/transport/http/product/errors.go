package product

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/light-bringer/foxshop-service/internal/app/product/domain"
	"github.com/light-bringer/foxshop-service/internal/pkg/logger"
)

// mapError converts an application error to an HTTP status and body.
func mapError(err error) (int, errorResponse) {
	var (
		verr     *ValidationError
		notFound *domain.NotFoundError
	)

	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, errorResponse{Error: "validation failed", Details: verr.Fields}

	case errors.Is(err, errBadBody):
		return http.StatusBadRequest, errorResponse{Error: err.Error()}

	case errors.As(err, &notFound):
		return http.StatusNotFound, errorResponse{Error: notFound.Error()}

	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, errorResponse{Error: "product not found"}

	case domain.IsValidationError(err):
		return http.StatusBadRequest, errorResponse{Error: err.Error()}

	default:
		return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
	}
}

// writeError aborts the request with the mapped error. Unexpected errors are
// logged with their cause; the client only sees a generic message.
func writeError(c *gin.Context, err error) {
	status, body := mapError(err)
	if status == http.StatusInternalServerError {
		logger.Error(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, body)
}
