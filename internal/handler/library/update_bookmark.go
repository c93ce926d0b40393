package library

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// UpdateBookmarkRequest 书签更新请求，chapterNumber为null表示清除
type UpdateBookmarkRequest struct {
	ChapterNumber *int `json:"chapterNumber"`
}

// UpdateBookmark 设置书签
// @Summary      设置书签
// @Tags         书架
// @Accept       json
// @Produce      json
// @Param        bookId   path      string                 true  "图书ID"
// @Param        request  body      UpdateBookmarkRequest  true  "书签请求"
// @Success      200      {object}  map[string]interface{}
// @Router       /api/v1/user-books/{bookId}/bookmark [put]
// @Security     BearerAuth
func (h *Handler) UpdateBookmark(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	var req UpdateBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	bookmark, err := h.libraryService.UpdateBookmark(c.Request.Context(), ident.UserID, c.Param("bookId"), req.ChapterNumber)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"bookmarkChapter": bookmark,
	})
}
