package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListUsers 列出普通读者
// @Summary      读者列表
// @Tags         管理后台
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/v1/admin/users [get]
// @Security     BearerAuth
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.adminService.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"users":   users,
	})
}

// DeleteUser 删除读者
// @Summary      删除读者
// @Tags         管理后台
// @Produce      json
// @Param        id   path      string  true  "用户ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/admin/users/{id} [delete]
// @Security     BearerAuth
func (h *Handler) DeleteUser(c *gin.Context) {
	if err := h.adminService.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User deleted successfully",
	})
}
