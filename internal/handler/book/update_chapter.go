package book

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"moonpages/internal/service"
)

// UpdateChapterRequest 更新章节请求，缺省字段不修改
type UpdateChapterRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	IsDraft *bool   `json:"isDraft"`
}

// UpdateChapter 按编号更新章节
// @Summary      更新章节
// @Description  部分更新章节字段，内容变更时总字数同步刷新
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        bookId         path      string                true  "图书ID"
// @Param        chapterNumber  path      int                   true  "章节编号"
// @Param        request        body      UpdateChapterRequest  true  "更新章节请求"
// @Success      200            {object}  map[string]interface{}
// @Failure      400            {object}  ErrorResponse
// @Failure      404            {object}  ErrorResponse
// @Router       /api/v1/books/chapter/{bookId}/{chapterNumber} [patch]
// @Security     BearerAuth
func (h *Handler) UpdateChapter(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	bookID := c.Param("bookId")
	chapterNumber, err := strconv.Atoi(c.Param("chapterNumber"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid chapter number provided."})
		return
	}

	var req UpdateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	ch, err := h.bookService.UpdateChapter(c.Request.Context(), ident, bookID, chapterNumber, service.UpdateChapterInput{
		Title:   req.Title,
		Content: req.Content,
		IsDraft: req.IsDraft,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"chapter": ch,
	})
}
