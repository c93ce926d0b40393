package author

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"moonpages/internal/pkg/ctxutil"
	httpPkg "moonpages/internal/pkg/http"
	"moonpages/internal/service"
)

// GetDashboard 获取作者工作台数据
// @Summary      作者工作台
// @Description  已发布数、读者总数与最近评论
// @Tags         作者
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  httpPkg.ErrorResponse
// @Router       /api/v1/author/dashboard [get]
// @Security     BearerAuth
func (h *Handler) GetDashboard(c *gin.Context) {
	ident, ok := ctxutil.GetIdentity(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpPkg.ErrorResponse{Message: "Authentication required."})
		return
	}

	dashboard, err := h.authorService.GetDashboard(c.Request.Context(), ident)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, service.ErrForbidden):
			status = http.StatusForbidden
		case errors.Is(err, service.ErrNotFound):
			status = http.StatusNotFound
		}
		c.JSON(status, httpPkg.ErrorResponse{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"stats":          dashboard.Stats,
		"recentComments": dashboard.RecentComments,
	})
}
