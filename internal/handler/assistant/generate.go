package assistant

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httpPkg "moonpages/internal/pkg/http"
)

// GenerateRequest 文本生成请求
type GenerateRequest struct {
	Prompt string `json:"prompt"`
}

// Generate 转发文本生成请求
// @Summary      文本生成
// @Tags         AI助手
// @Accept       json
// @Produce      json
// @Param        request  body      GenerateRequest  true  "生成请求"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  httpPkg.ErrorResponse
// @Failure      500      {object}  httpPkg.ErrorResponse
// @Router       /api/v1/assistant/generate [post]
// @Security     BearerAuth
func (h *Handler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Prompt == "" {
		c.JSON(http.StatusBadRequest, httpPkg.ErrorResponse{Message: "Prompt is required"})
		return
	}

	data, err := h.assistantService.Generate(c.Request.Context(), req.Prompt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpPkg.ErrorResponse{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": data,
	})
}
