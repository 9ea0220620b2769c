package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harentsoaR/dental-booking/internal/apperr"
)

type envelope struct {
	Success bool   `json:"success"`
	Count   *int   `json:"count,omitempty"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func respond(c *gin.Context, status int, data any) {
	c.JSON(status, envelope{Success: true, Data: data})
}

func respondList[T any](c *gin.Context, items []T) {
	n := len(items)
	c.JSON(http.StatusOK, envelope{Success: true, Count: &n, Data: items})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, envelope{Success: false, Message: message})
}

var statusByKind = map[apperr.Kind]int{
	apperr.KindValidation:      http.StatusBadRequest,
	apperr.KindUnauthenticated: http.StatusUnauthorized,
	apperr.KindForbidden:       http.StatusForbidden,
	apperr.KindNotFound:        http.StatusNotFound,
	apperr.KindConflict:        http.StatusConflict,
}

// fail writes err as an error envelope. Unexpected errors are logged and
// replaced by fallback so internals never reach the client.
func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	status, ok := statusByKind[apperr.KindOf(err)]
	if !ok {
		h.Logger.Error(fallback,
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, envelope{Success: false, Message: fallback})
		return
	}
	c.JSON(status, envelope{Success: false, Message: err.Error()})
}
