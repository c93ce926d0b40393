package admin

import (
	"moonpages/internal/service"
)

// Handler 管理后台处理器
type Handler struct {
	adminService *service.AdminService
}

// NewHandler 创建管理后台处理器
func NewHandler(adminService *service.AdminService) *Handler {
	return &Handler{
		adminService: adminService,
	}
}
