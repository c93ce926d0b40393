package book

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"moonpages/internal/service"
)

// ChapterRequest 创建图书时的章节
type ChapterRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CreateBookRequest 创建图书请求
type CreateBookRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Categories  []string         `json:"categories"`
	Chapters    []ChapterRequest `json:"chapters"`
}

// CreateBook 创建图书
// @Summary      创建图书
// @Description  作者创建新书，未提供章节时自动生成空的第1章
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        request  body      CreateBookRequest  true  "创建图书请求"
// @Success      201      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse
// @Failure      403      {object}  ErrorResponse
// @Router       /api/v1/books [post]
// @Security     BearerAuth
func (h *Handler) CreateBook(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	var req CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	input := service.CreateBookInput{
		Title:       req.Title,
		Description: req.Description,
		Categories:  req.Categories,
	}
	for _, ch := range req.Chapters {
		input.Chapters = append(input.Chapters, service.ChapterInput{
			Title:   ch.Title,
			Content: ch.Content,
		})
	}

	b, err := h.bookService.CreateBook(c.Request.Context(), ident, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"book":    b,
	})
}
