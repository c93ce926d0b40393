package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"

	"moonpages/internal/model/auth"
	"moonpages/internal/pkg/id"
	"moonpages/internal/pkg/jwt"
	"moonpages/internal/pkg/mailer"
	"moonpages/internal/pkg/password"
	authRepo "moonpages/internal/repository/auth"
)

var (
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrInvalidRefresh     = errors.New("Invalid or expired refresh token")
)

// AuthService 认证服务
type AuthService struct {
	userRepo         authRepo.UserRepository
	jwt              *jwt.JWT
	mailer           mailer.Mailer
	clientURL        string
	resetTokenExpiry time.Duration
}

// NewAuthService 创建认证服务
func NewAuthService(
	userRepo authRepo.UserRepository,
	jwtUtil *jwt.JWT,
	mail mailer.Mailer,
	clientURL string,
	resetTokenExpiry time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		jwt:              jwtUtil,
		mailer:           mail,
		clientURL:        strings.TrimSuffix(clientURL, "/"),
		resetTokenExpiry: resetTokenExpiry,
	}
}

// RegisterInput 注册输入
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      string // 缺省USER，统一转大写校验
}

// AuthResult 注册/登录结果
type AuthResult struct {
	UserID       string
	Email        string
	Roles        []auth.Role
	AccessToken  string
	RefreshToken string
}

// Register 用户注册
// 角色只接受USER/AUTHOR/ADMIN枚举值，注册成功直接签发token
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, ValidationError("Email and password are required")
	}

	existing, _ := s.userRepo.FindByEmail(ctx, email)
	if existing != nil {
		return nil, ValidationError("Email exists")
	}

	role := auth.RoleUser
	if input.Role != "" {
		role = auth.Role(strings.ToUpper(input.Role))
		if !role.IsValid() {
			return nil, ValidationError("Invalid role value")
		}
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")
		return nil, errors.New("Internal server error")
	}

	user := &auth.User{
		ID:        id.New(),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     email,
		Password:  hashed,
		Roles:     []auth.Role{role},
		Approved:  auth.StatusNone,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		log.Error().Err(err).Str("email", email).Msg("failed to create user")
		return nil, errors.New("Internal server error")
	}

	return s.issueTokens(user)
}

// RegisterAdmin 注册管理员（仅ADMIN可调用，路由层已鉴权）
func (s *AuthService) RegisterAdmin(ctx context.Context, email, pwd string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || pwd == "" {
		return nil, ValidationError("Email and password are required")
	}

	existing, _ := s.userRepo.FindByEmail(ctx, email)
	if existing != nil {
		return nil, ValidationError("Email exists")
	}

	hashed, err := password.Hash(pwd)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")
		return nil, errors.New("Internal server error")
	}

	user := &auth.User{
		ID:       id.New(),
		Email:    email,
		Password: hashed,
		Roles:    []auth.Role{auth.RoleAdmin},
		Approved: auth.StatusNone,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		log.Error().Err(err).Str("email", email).Msg("failed to create admin")
		return nil, errors.New("Internal server error")
	}

	return s.issueTokens(user)
}

// Login 用户登录
// 用户不存在和密码错误返回同一个错误，不暴露账号是否存在
func (s *AuthService) Login(ctx context.Context, email, pwd string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !password.Verify(pwd, user.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// Refresh 用Refresh Token换新的Access Token
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", ErrInvalidRefresh
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", ErrInvalidRefresh
	}

	accessToken, err := s.jwt.GenerateAccessToken(user.ID, user.RoleStrings())
	if err != nil {
		log.Error().Err(err).Msg("failed to generate access token")
		return "", errors.New("Internal server error")
	}
	return accessToken, nil
}

// GetProfile 获取当前用户信息
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*auth.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, NotFoundError("User not found")
	}
	return user, nil
}

// ForgotPassword 发起密码重置
// 明文token只进邮件，库里存SHA-256哈希
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return NotFoundError("User not found")
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		log.Error().Err(err).Msg("failed to generate reset token")
		return errors.New("Server error")
	}
	resetToken := hex.EncodeToString(raw)
	tokenHash := hashResetToken(resetToken)
	expires := time.Now().Add(s.resetTokenExpiry)

	update := bson.M{"$set": bson.M{
		"reset_password_token":   tokenHash,
		"reset_password_expires": expires,
	}}
	if err := s.userRepo.Update(ctx, user.ID, update); err != nil {
		log.Error().Err(err).Str("user", user.ID).Msg("failed to store reset token")
		return errors.New("Server error")
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", s.clientURL, resetToken)
	body := fmt.Sprintf("<h3>Hello %s</h3>\n%s", user.FirstName, mailer.ResetPasswordBody(resetURL, s.resetTokenExpiry))

	if err := s.mailer.Send(user.Email, "MoonPages Password Reset", body); err != nil {
		log.Error().Err(err).Str("user", user.ID).Msg("failed to send reset email")
		return errors.New("Server error")
	}
	return nil
}

// ResetPassword 用邮件里的token重置密码
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if newPassword == "" {
		return ValidationError("Password is required")
	}

	user, err := s.userRepo.FindByResetToken(ctx, hashResetToken(token))
	if err != nil {
		return ValidationError("Invalid or expired token")
	}

	hashed, err := password.Hash(newPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")
		return errors.New("Server error")
	}

	update := bson.M{
		"$set":   bson.M{"password": hashed},
		"$unset": bson.M{"reset_password_token": "", "reset_password_expires": ""},
	}
	if err := s.userRepo.Update(ctx, user.ID, update); err != nil {
		log.Error().Err(err).Str("user", user.ID).Msg("failed to reset password")
		return errors.New("Server error")
	}
	return nil
}

func (s *AuthService) issueTokens(user *auth.User) (*AuthResult, error) {
	accessToken, err := s.jwt.GenerateAccessToken(user.ID, user.RoleStrings())
	if err != nil {
		log.Error().Err(err).Msg("failed to generate access token")
		return nil, errors.New("Internal server error")
	}

	refreshToken, err := s.jwt.GenerateRefreshToken(user.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate refresh token")
		return nil, errors.New("Internal server error")
	}

	return &AuthResult{
		UserID:       user.ID,
		Email:        user.Email,
		Roles:        user.Roles,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
