package book

import (
	"moonpages/internal/service"
)

// Handler 图书处理器
// 所有图书相关的Handler方法都通过这个结构体访问Service
type Handler struct {
	bookService *service.BookService
}

// NewHandler 创建图书处理器
func NewHandler(bookService *service.BookService) *Handler {
	return &Handler{
		bookService: bookService,
	}
}
