package library

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetLibrary 获取读者书架
// @Summary      获取书架
// @Description  按最近阅读倒序，图书已被删除的条目自动过滤
// @Tags         书架
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/v1/user-books [get]
// @Security     BearerAuth
func (h *Handler) GetLibrary(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	entries, err := h.libraryService.GetLibrary(c.Request.Context(), ident.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"library": entries,
	})
}
