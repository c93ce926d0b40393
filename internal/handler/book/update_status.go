package book

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// UpdateStatusRequest 更新状态请求
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus 更新图书状态
// @Summary      更新图书状态
// @Description  仅接受 DRAFT/PENDING/PUBLISHED/REJECTED
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        bookId   path      string               true  "图书ID"
// @Param        request  body      UpdateStatusRequest  true  "更新状态请求"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /api/v1/books/{bookId}/status [patch]
// @Security     BearerAuth
func (h *Handler) UpdateStatus(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Book status is required."})
		return
	}

	status, err := h.bookService.UpdateStatus(c.Request.Context(), ident, c.Param("bookId"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Book status updated successfully.",
		"status":  status,
	})
}
