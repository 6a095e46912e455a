package storage

import (
	"context"
	"errors"
	"io"
	"library-catalog/app/server/config"
	"path"
	"strings"
)

var (
	ErrNotFound    = errors.New("object not found")
	ErrInvalidPath = errors.New("invalid object path")
)

// Storage 保存封面与头像文件，路径是相对于存储根的 key ，例如 covers/xxx.jpg
type Storage interface {
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Save(ctx context.Context, key string, r io.Reader) error
	// Delete 删除文件，文件不存在时不报错
	Delete(ctx context.Context, key string) error
}

// New 根据配置选择 S3 或本地目录
func New(ctx context.Context, cfg config.Media) (Storage, error) {
	if cfg.S3Bucket != "" {
		return NewS3(ctx, cfg)
	}
	return NewLocal(cfg.Root)
}

// CleanKey 规范化 key ，拒绝跳出存储根的路径
func CleanKey(key string) (string, error) {
	if key == "" || strings.Contains(key, `\`) {
		return "", ErrInvalidPath
	}
	cleaned := path.Clean("/" + key)[1:]
	if cleaned == "" || cleaned != strings.TrimPrefix(key, "/") {
		return "", ErrInvalidPath
	}
	return cleaned, nil
}
