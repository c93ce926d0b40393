package storage

import (
	"context"
	"io"
)

// Storage 存储接口
// 用于封面图、头像等图片资源的上传
type Storage interface {
	// Upload 上传文件，返回可公开访问的URL
	Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error)

	// Download 下载文件
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete 删除文件
	Delete(ctx context.Context, key string) error

	// Exists 检查文件是否存在
	Exists(ctx context.Context, key string) (bool, error)

	// GetStorageType 获取存储类型
	GetStorageType() string
}

// StorageType 存储类型
type StorageType string

const (
	StorageTypeLocal StorageType = "local" // 本地文件系统
	StorageTypeOSS   StorageType = "oss"   // 阿里云OSS
)

// 资源key前缀
const (
	CoverKeyPrefix  = "covers/"
	AvatarKeyPrefix = "avatars/"
)
