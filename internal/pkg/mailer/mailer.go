package mailer

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"moonpages/internal/config"
)

// Mailer 邮件发送器
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// SMTPMailer 基于SMTP的邮件发送器
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer 创建SMTP邮件发送器
func NewSMTPMailer(cfg *config.MailConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// Send 发送HTML邮件
func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}

// ResetPasswordBody 构造重置密码邮件正文，有效期跟随配置
func ResetPasswordBody(resetURL string, expiry time.Duration) string {
	return fmt.Sprintf(`<p>You requested a password reset.</p>
<p>Click <a href="%s">here</a> to reset your password. This link expires in %d minutes.</p>
<p>If you did not request this, you can safely ignore this email.</p>`, resetURL, int(expiry.Minutes()))
}
