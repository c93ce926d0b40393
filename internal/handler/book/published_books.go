package book

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListPublishedBooks 公开书城列表
// @Summary      已发布图书列表
// @Description  公开接口，仅返回PUBLISHED状态的图书（不含章节正文）
// @Tags         图书
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/v1/books/published [get]
func (h *Handler) ListPublishedBooks(c *gin.Context) {
	books, err := h.bookService.ListPublishedBooks(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"books":   books,
	})
}
