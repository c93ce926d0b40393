package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListAuthors 列出作者及其作品
// @Summary      作者列表
// @Tags         管理后台
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/v1/admin/authors [get]
// @Security     BearerAuth
func (h *Handler) ListAuthors(c *gin.Context) {
	authors, err := h.adminService.ListAuthors(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"authors": authors,
	})
}

// DeleteAuthor 删除作者
// @Summary      删除作者
// @Description  级联删除该作者的全部图书
// @Tags         管理后台
// @Produce      json
// @Param        id   path      string  true  "作者ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/admin/authors/{id} [delete]
// @Security     BearerAuth
func (h *Handler) DeleteAuthor(c *gin.Context) {
	if err := h.adminService.DeleteAuthor(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Author deleted successfully",
	})
}
