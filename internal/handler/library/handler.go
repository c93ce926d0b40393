package library

import (
	"moonpages/internal/service"
)

// Handler 读者书架处理器
type Handler struct {
	libraryService *service.LibraryService
}

// NewHandler 创建书架处理器
func NewHandler(libraryService *service.LibraryService) *Handler {
	return &Handler{
		libraryService: libraryService,
	}
}
