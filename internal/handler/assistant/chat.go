package assistant

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ChatRequest 助手对话请求
type ChatRequest struct {
	Message string `json:"message"`
}

// Chat 图书助手对话
// @Summary      助手对话
// @Description  基于已发布书目回答，上游故障时返回兜底回复
// @Tags         AI助手
// @Accept       json
// @Produce      json
// @Param        request  body      ChatRequest  true  "对话请求"
// @Success      200      {object}  map[string]interface{}
// @Router       /api/v1/assistant/chat [post]
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req.Message = ""
	}

	reply := h.assistantService.Chat(c.Request.Context(), req.Message)

	c.JSON(http.StatusOK, gin.H{
		"reply": reply,
	})
}
