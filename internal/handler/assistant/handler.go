package assistant

import (
	"moonpages/internal/service"
)

// Handler AI助手处理器
type Handler struct {
	assistantService *service.AssistantService
}

// NewHandler 创建AI助手处理器
func NewHandler(assistantService *service.AssistantService) *Handler {
	return &Handler{
		assistantService: assistantService,
	}
}
