package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListBooks 列出全部图书概览
// @Summary      图书概览列表
// @Description  带作者姓名，不含章节正文
// @Tags         管理后台
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/v1/admin/books [get]
// @Security     BearerAuth
func (h *Handler) ListBooks(c *gin.Context) {
	books, err := h.adminService.ListBooks(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"books":   books,
	})
}
