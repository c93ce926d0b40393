package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// UpdateProfileRequest 资料更新请求，空字段保持原值
type UpdateProfileRequest struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
}

// UpdateProfile 更新当前用户资料
// @Summary      更新资料
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request  body      UpdateProfileRequest  true  "更新字段"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse
// @Router       /api/v1/user/update [put]
// @Security     BearerAuth
func (h *Handler) UpdateProfile(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	updated, err := h.userService.UpdateProfile(c.Request.Context(), ident.UserID, req.FirstName, req.LastName, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    updated,
	})
}
