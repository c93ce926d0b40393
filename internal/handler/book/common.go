package book

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"moonpages/internal/pkg/ctxutil"
	httpPkg "moonpages/internal/pkg/http"
	"moonpages/internal/service"
)

// ErrorResponse 错误响应（swagger用）
type ErrorResponse = httpPkg.ErrorResponse

// identity 从请求context取调用方身份，取不到直接写401
func identity(c *gin.Context) (ctxutil.Identity, bool) {
	ident, ok := ctxutil.GetIdentity(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Authentication required."})
	}
	return ident, ok
}

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
