package http

// ErrorResponse 错误响应（所有API共用）
// 用于统一错误响应格式
type ErrorResponse struct {
	Message string `json:"message"` // 错误消息
}

// MessageResponse 仅携带提示消息的成功响应
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewErrorResponse 创建错误响应
func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{Message: message}
}

// NewMessageResponse 创建消息响应
func NewMessageResponse(message string) *MessageResponse {
	return &MessageResponse{Success: true, Message: message}
}
