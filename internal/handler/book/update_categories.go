package book

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// UpdateCategoriesRequest 更新分类请求
type UpdateCategoriesRequest struct {
	Categories []string `json:"categories"`
}

// UpdateCategories 整体替换分类
// @Summary      更新分类
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        bookId   path      string                   true  "图书ID"
// @Param        request  body      UpdateCategoriesRequest  true  "更新分类请求"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /api/v1/books/{bookId}/categories [patch]
// @Security     BearerAuth
func (h *Handler) UpdateCategories(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	var req UpdateCategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Categories must be an array of strings."})
		return
	}

	categories, err := h.bookService.UpdateCategories(c.Request.Context(), ident, c.Param("bookId"), req.Categories)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Categories updated successfully.",
		"categories": categories,
	})
}
