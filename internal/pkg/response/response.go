package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"hvacops/internal/pkg/apperr"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// FromError writes the envelope matching err's place in the taxonomy.
// Persistence causes are logged and attached to the gin context, never sent
// to the client.
func FromError(c *gin.Context, err error) {
	var ve *apperr.ValidationError
	switch {
	case errors.As(err, &ve):
		ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", ve.Error(), ve.Details)
	case errors.Is(err, apperr.ErrNotFound):
		Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, apperr.ErrUnauthorized):
		Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
	case errors.Is(err, apperr.ErrForbidden):
		Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
	default:
		_ = c.Error(err)
		slog.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"err", err,
		)
		Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong, please try again later")
	}
}

func InvalidJSON(c *gin.Context) {
	Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
}
