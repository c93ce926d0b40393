package library

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetUserBook 获取读者在某本书上的数据
// @Summary      获取书架条目
// @Description  返回书签、高亮、评论等，首次访问自动创建
// @Tags         书架
// @Produce      json
// @Param        bookId  path      string  true  "图书ID"
// @Success      200     {object}  map[string]interface{}
// @Failure      404     {object}  ErrorResponse
// @Router       /api/v1/user-books/{bookId} [get]
// @Security     BearerAuth
func (h *Handler) GetUserBook(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	entry, err := h.libraryService.GetUserBook(c.Request.Context(), ident.UserID, c.Param("bookId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entry,
	})
}
