package library

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"moonpages/internal/service"
)

// AddHighlightRequest 添加高亮请求
type AddHighlightRequest struct {
	ChapterNumber int    `json:"chapterNumber"`
	Text          string `json:"text"`
	StartOffset   *int   `json:"startOffset"`
	EndOffset     *int   `json:"endOffset"`
}

// AddHighlight 添加高亮
// @Summary      添加高亮
// @Tags         书架
// @Accept       json
// @Produce      json
// @Param        bookId   path      string               true  "图书ID"
// @Param        request  body      AddHighlightRequest  true  "高亮请求"
// @Success      201      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse
// @Router       /api/v1/user-books/{bookId}/highlights [post]
// @Security     BearerAuth
func (h *Handler) AddHighlight(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	var req AddHighlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Missing highlight data."})
		return
	}

	highlight, err := h.libraryService.AddHighlight(c.Request.Context(), ident.UserID, c.Param("bookId"), service.HighlightInput{
		ChapterNumber: req.ChapterNumber,
		Text:          req.Text,
		StartOffset:   req.StartOffset,
		EndOffset:     req.EndOffset,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"highlight": highlight,
	})
}

// DeleteHighlight 删除高亮
// @Summary      删除高亮
// @Tags         书架
// @Produce      json
// @Param        bookId       path      string  true  "图书ID"
// @Param        highlightId  path      string  true  "高亮ID"
// @Success      200          {object}  map[string]interface{}
// @Failure      404          {object}  ErrorResponse
// @Router       /api/v1/user-books/{bookId}/highlights/{highlightId} [delete]
// @Security     BearerAuth
func (h *Handler) DeleteHighlight(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	highlightID := c.Param("highlightId")
	if err := h.libraryService.DeleteHighlight(c.Request.Context(), ident.UserID, c.Param("bookId"), highlightID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"message":            "Highlight deleted successfully.",
		"deletedHighlightId": highlightID,
	})
}
