package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	httpPkg "moonpages/internal/pkg/http"
	"moonpages/internal/service"
)

// ErrorResponse 错误响应（swagger用）
type ErrorResponse = httpPkg.ErrorResponse

// respondError 按服务层错误类别映射HTTP状态码
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	}
	c.JSON(status, ErrorResponse{Message: err.Error()})
}
