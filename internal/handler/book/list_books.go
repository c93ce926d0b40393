package book

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListBooks 作者作品列表
// @Summary      作者作品列表
// @Description  分页返回当前作者的图书（不含章节正文）
// @Tags         图书
// @Produce      json
// @Param        page   query     int  false  "页码，默认1"
// @Param        limit  query     int  false  "每页条数，默认10"
// @Success      200    {object}  map[string]interface{}
// @Failure      403    {object}  ErrorResponse
// @Router       /api/v1/books [get]
// @Security     BearerAuth
func (h *Handler) ListBooks(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)

	books, pagination, err := h.bookService.ListAuthorBooks(c.Request.Context(), ident, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"books":      books,
		"pagination": pagination,
	})
}
