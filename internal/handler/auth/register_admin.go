package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterAdminRequest 注册管理员请求
type RegisterAdminRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// RegisterAdmin 注册管理员
// @Summary      注册管理员
// @Description  仅ADMIN可调用
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request  body      RegisterAdminRequest  true  "注册管理员请求"
// @Success      201      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse
// @Failure      403      {object}  ErrorResponse
// @Router       /api/v1/auth/admin/register [post]
// @Security     BearerAuth
func (h *Handler) RegisterAdmin(c *gin.Context) {
	var req RegisterAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	result, err := h.authService.RegisterAdmin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Admin registered",
		"data":    toAuthData(result),
	})
}
