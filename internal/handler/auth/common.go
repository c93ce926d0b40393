package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"moonpages/internal/model/auth"
	httpPkg "moonpages/internal/pkg/http"
	"moonpages/internal/service"
)

// ErrorResponse 错误响应（swagger用）
type ErrorResponse = httpPkg.ErrorResponse

// AuthData 注册/登录响应数据
type AuthData struct {
	Email        string      `json:"email"`
	Roles        []auth.Role `json:"roles"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
}

func toAuthData(r *service.AuthResult) AuthData {
	return AuthData{
		Email:        r.Email,
		Roles:        r.Roles,
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
	}
}

// respondError 按服务层错误类别映射HTTP状态码
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden), errors.Is(err, service.ErrInvalidRefresh):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	}
	c.JSON(status, ErrorResponse{Message: err.Error()})
}
