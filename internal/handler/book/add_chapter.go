package book

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"moonpages/internal/service"
)

// AddChapterRequest 追加章节请求
type AddChapterRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	IsDraft *bool  `json:"isDraft"`
}

// AddChapter 追加章节
// @Summary      追加章节
// @Description  在书末追加新章节，编号取现有最大编号+1
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        bookId   path      string             true  "图书ID"
// @Param        request  body      AddChapterRequest  true  "追加章节请求"
// @Success      201      {object}  map[string]interface{}
// @Failure      404      {object}  ErrorResponse
// @Router       /api/v1/books/{bookId}/chapter [post]
// @Security     BearerAuth
func (h *Handler) AddChapter(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	var req AddChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	ch, err := h.bookService.AddChapter(c.Request.Context(), ident, c.Param("bookId"), service.AddChapterInput{
		Title:   req.Title,
		Content: req.Content,
		IsDraft: req.IsDraft,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"chapter": ch,
	})
}
