package handlers

import (
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"library-catalog/app/server/constants"
	"go.uber.org/zap"
	"library-catalog/app/server/media"
	"net/http"
	"path"
	"strings"
)

const msgInvalidImage = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."

// saveUpload 保存上传的图片并返回存储路径。没有上传时 key 为空，内容不合格时返回字段错误
func (a *App) saveUpload(c echo.Context, field string, prefix string) (string, map[string]string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil, nil
		}
		return "", nil, fmt.Errorf("read form file: %w", err)
	}

	if fh.Size > constants.MaxUploadSize {
		return "", map[string]string{field: "The uploaded file is too large."}, nil
	}
	if !media.IsImageName(fh.Filename) {
		return "", map[string]string{field: msgInvalidImage}, nil
	}

	f, err := fh.Open()
	if err != nil {
		return "", nil, fmt.Errorf("open form file: %w", err)
	}
	defer f.Close()

	// 完整解码一次，Sniff 结束后已经回到开头
	if err = media.Sniff(f); err != nil {
		return "", map[string]string{field: msgInvalidImage}, nil
	}

	key := prefix + uuid.NewString() + strings.ToLower(path.Ext(fh.Filename))
	if err = a.store.Save(c.Request().Context(), key, f); err != nil {
		return "", nil, fmt.Errorf("save %s: %w", key, err)
	}

	return key, nil, nil
}

// discardUpload 删除已经保存但没有用上的文件
func (a *App) discardUpload(c echo.Context, key string) {
	if err := a.store.Delete(c.Request().Context(), key); err != nil {
		a.l.Error("failed to delete unused upload", zap.String("key", key), zap.Error(err))
	}
}
