package ai

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	"moonpages/internal/ai/component"
	"moonpages/internal/config"
)

// Client AI 能力层客户端
// 封装两个模型端点：assistant 负责站内对话，generator 负责写作内容生成
type Client struct {
	assistant model.ChatModel
	generator model.ChatModel
}

// NewClient 创建 AI 客户端
func NewClient(ctx context.Context, cfg *config.AIConfig) (*Client, error) {
	if cfg.Assistant.APIKey == "" {
		log.Warn().Msg("assistant model API key not configured")
	}
	if cfg.Generator.APIKey == "" {
		log.Warn().Msg("generator model API key not configured")
	}

	assistant, err := component.NewChatModel(ctx, &cfg.Assistant)
	if err != nil {
		return nil, fmt.Errorf("failed to create assistant model: %w", err)
	}

	generator, err := component.NewChatModel(ctx, &cfg.Generator)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator model: %w", err)
	}

	return &Client{
		assistant: assistant,
		generator: generator,
	}, nil
}

// Chat 带系统提示词的单轮对话
func (c *Client) Chat(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	messages := []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(userMessage),
	}

	resp, err := c.assistant.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	return resp.Content, nil
}

// Generate 内容生成（无系统提示词，直接转发prompt）
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	messages := []*schema.Message{
		schema.UserMessage(prompt),
	}

	resp, err := c.generator.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("content generation failed: %w", err)
	}
	return resp.Content, nil
}
