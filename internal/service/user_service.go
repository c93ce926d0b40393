package service

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"

	"moonpages/internal/model/auth"
	"moonpages/internal/pkg/storage"
	authRepo "moonpages/internal/repository/auth"
)

// UserService 用户个人中心服务
type UserService struct {
	userRepo authRepo.UserRepository
	storage  storage.Storage
}

// NewUserService 创建用户个人中心服务
func NewUserService(users authRepo.UserRepository, store storage.Storage) *UserService {
	return &UserService{
		userRepo: users,
		storage:  store,
	}
}

// UpdateProfile 更新个人资料（空字段保留原值）
func (s *UserService) UpdateProfile(ctx context.Context, userID, firstName, lastName, email string) (*auth.User, error) {
	set := bson.M{}
	if firstName != "" {
		set["first_name"] = firstName
	}
	if lastName != "" {
		set["last_name"] = lastName
	}
	if email != "" {
		set["email"] = strings.ToLower(strings.TrimSpace(email))
	}

	if len(set) > 0 {
		if err := s.userRepo.Update(ctx, userID, bson.M{"$set": set}); err != nil {
			log.Error().Err(err).Str("user", userID).Msg("failed to update user")
			return nil, errors.New("Failed to update user")
		}
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, NotFoundError("User not found")
	}
	return user, nil
}

// DeleteAccount 注销账号
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		log.Error().Err(err).Str("user", userID).Msg("failed to delete user")
		return errors.New("Failed to delete user")
	}
	return nil
}

// UploadProfilePic 上传头像并更新用户
func (s *UserService) UploadProfilePic(ctx context.Context, userID, filename string, file io.Reader, contentType string) (*auth.User, string, error) {
	key := storage.AvatarKeyPrefix + userID + path.Ext(filename)
	url, err := s.storage.Upload(ctx, key, file, contentType)
	if err != nil {
		log.Error().Err(err).Str("user", userID).Msg("failed to upload profile picture")
		return nil, "", errors.New("Error uploading profile picture")
	}

	update := bson.M{"$set": bson.M{"profile_pic": url}}
	if err := s.userRepo.Update(ctx, userID, update); err != nil {
		log.Error().Err(err).Str("user", userID).Msg("failed to save profile picture url")
		return nil, "", errors.New("Error uploading profile picture")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, "", NotFoundError("User not found")
	}
	return user, url, nil
}
