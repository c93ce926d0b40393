package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"moonpages/internal/pkg/ctxutil"
)

// Me 获取当前用户信息
// @Summary      当前用户信息
// @Tags         认证
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/auth/me [get]
// @Security     BearerAuth
func (h *Handler) Me(c *gin.Context) {
	ident, ok := ctxutil.GetIdentity(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
		return
	}

	user, err := h.authService.GetProfile(c.Request.Context(), ident.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "ok",
		"data": gin.H{
			"id":         user.ID,
			"email":      user.Email,
			"roles":      user.Roles,
			"firstName":  user.FirstName,
			"lastName":   user.LastName,
			"profilePic": user.ProfilePic,
		},
	})
}
