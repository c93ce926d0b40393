package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DeleteAccount 注销当前账号
// @Summary      注销账号
// @Tags         用户
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/user/delete [delete]
// @Security     BearerAuth
func (h *Handler) DeleteAccount(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteAccount(c.Request.Context(), ident.UserID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Account deleted",
	})
}
