package author

import (
	"moonpages/internal/service"
)

// Handler 作者工作台处理器
type Handler struct {
	authorService *service.AuthorService
}

// NewHandler 创建作者工作台处理器
func NewHandler(authorService *service.AuthorService) *Handler {
	return &Handler{
		authorService: authorService,
	}
}
