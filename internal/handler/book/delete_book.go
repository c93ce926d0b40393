package book

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DeleteBook 删除图书
// @Summary      删除图书
// @Description  删除作者自己的图书，读者书架条目不级联清理
// @Tags         图书
// @Produce      json
// @Param        bookId  path      string  true  "图书ID"
// @Success      200     {object}  map[string]interface{}
// @Failure      404     {object}  ErrorResponse
// @Router       /api/v1/books/{bookId} [delete]
// @Security     BearerAuth
func (h *Handler) DeleteBook(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	bookID := c.Param("bookId")
	if err := h.bookService.DeleteBook(c.Request.Context(), ident, bookID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "Book deleted successfully.",
		"deletedBookId": bookID,
	})
}
