package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"moonpages/internal/ai"
	bookRepo "moonpages/internal/repository/book"
)

// 上游对话失败时返回给读者的兜底回复
const assistantFallbackReply = "I'm having a quick nap. Please try again in a moment!"

// 系统提示词里最多带几本书的上下文
const assistantContextBooks = 5

// AssistantService 图书助手服务
// 纯转发层：组装上下文→调用模型→映射结果，不保存对话历史
type AssistantService struct {
	client   *ai.Client
	bookRepo bookRepo.BookRepository
}

// NewAssistantService 创建图书助手服务
func NewAssistantService(client *ai.Client, books bookRepo.BookRepository) *AssistantService {
	return &AssistantService{
		client:   client,
		bookRepo: books,
	}
}

// Chat 站内助手对话
// 系统提示词携带最多5本已发布图书的标题和简介；
// 上游失败不报错，返回兜底回复
func (s *AssistantService) Chat(ctx context.Context, message string) string {
	if strings.TrimSpace(message) == "" {
		return assistantFallbackReply
	}

	books, err := s.bookRepo.ListPublished(ctx, assistantContextBooks)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load book context for assistant")
		books = nil
	}

	var sb strings.Builder
	for _, b := range books {
		fmt.Fprintf(&sb, "Book: %s. Description: %s\n", b.Title, b.Description)
	}
	systemPrompt := fmt.Sprintf("You are the MoonPages assistant. Help users find books from our library: \n%s", sb.String())

	reply, err := s.client.Chat(ctx, systemPrompt, message)
	if err != nil {
		log.Error().Err(err).Msg("assistant chat failed")
		return assistantFallbackReply
	}
	return reply
}

// Generate 写作内容生成
func (s *AssistantService) Generate(ctx context.Context, prompt string) (string, error) {
	content, err := s.client.Generate(ctx, prompt)
	if err != nil {
		log.Error().Err(err).Msg("content generation failed")
		return "", errors.New("AI service rejected the request.")
	}
	if content == "" {
		content = "No data"
	}
	return content, nil
}
