package book

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetFullBook 获取整本书
// @Summary      获取整本书
// @Description  返回含全部章节正文的图书，供阅读器使用
// @Tags         图书
// @Produce      json
// @Param        bookId  path      string  true  "图书ID"
// @Success      200     {object}  map[string]interface{}
// @Failure      404     {object}  ErrorResponse
// @Router       /api/v1/books/{bookId} [get]
// @Security     BearerAuth
func (h *Handler) GetFullBook(c *gin.Context) {
	b, err := h.bookService.GetFullBook(c.Request.Context(), c.Param("bookId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"book":    b,
	})
}
