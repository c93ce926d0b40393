package book

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetChapter 获取章节
// @Summary      获取章节
// @Description  按编号返回章节内容，仅书的作者可读
// @Tags         图书
// @Produce      json
// @Param        bookId         path      string  true  "图书ID"
// @Param        chapterNumber  path      int     true  "章节编号"
// @Success      200            {object}  map[string]interface{}
// @Failure      404            {object}  ErrorResponse
// @Router       /api/v1/books/chapter/{bookId}/{chapterNumber} [get]
// @Security     BearerAuth
func (h *Handler) GetChapter(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	bookID := c.Param("bookId")
	chapterNumber, err := strconv.Atoi(c.Param("chapterNumber"))
	if err != nil || chapterNumber < 1 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid chapter number provided."})
		return
	}

	ch, err := h.bookService.GetChapter(c.Request.Context(), ident, bookID, chapterNumber)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"chapter": ch,
	})
}
