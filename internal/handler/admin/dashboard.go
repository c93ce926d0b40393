package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetDashboard 获取后台统计面板
// @Summary      后台统计
// @Description  各角色用户数与各状态图书数，带短缓存
// @Tags         管理后台
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /api/v1/admin/dashboard [get]
// @Security     BearerAuth
func (h *Handler) GetDashboard(c *gin.Context) {
	stats, err := h.adminService.GetDashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   stats,
	})
}
