package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RefreshRequest 刷新Token请求
type RefreshRequest struct {
	Token string `json:"token"`
}

// Refresh 刷新Access Token
// @Summary      刷新Access Token
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request  body      RefreshRequest  true  "刷新请求"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse
// @Failure      403      {object}  ErrorResponse
// @Router       /api/v1/auth/refresh [post]
func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Token required"})
		return
	}

	accessToken, err := h.authService.Refresh(c.Request.Context(), req.Token)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken": accessToken,
	})
}
