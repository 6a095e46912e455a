package media

import (
	"bytes"
	"context"
	"fmt"
	"github.com/disintegration/imaging"
	"image"
	"io"
	"library-catalog/app/server/constants"
	"library-catalog/app/server/storage"
	"library-catalog/app/server/types"
)

// Bounds 每种图片的最大尺寸
func Bounds(kind types.ResizeJobKind) (int, int, error) {
	switch kind {
	case types.ResizeJobAvatar:
		return constants.AvatarMaxWidth, constants.AvatarMaxHeight, nil
	case types.ResizeJobCover:
		return constants.CoverMaxWidth, constants.CoverMaxHeight, nil
	default: // 这是个啥
		return 0, 0, fmt.Errorf("unsupported job kind %q", kind)
	}
}

// IsImageName 根据扩展名判断是否为支持的图片格式
func IsImageName(name string) bool {
	_, err := imaging.FormatFromFilename(name)
	return err == nil
}

// Sniff 确认上传的内容是完整的图片：先读文件头，再完整解码一次，结束后回到开头
func Sniff(r io.ReadSeeker) error {
	if _, _, err := image.DecodeConfig(r); err != nil {
		return fmt.Errorf("not an image: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind image: %w", err)
	}

	// 文件头正常但数据损坏或被截断
	if _, err := imaging.Decode(r); err != nil {
		return fmt.Errorf("corrupt image: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind image: %w", err)
	}
	return nil
}

// Fit 在保持比例的前提下把图片缩小到 maxW x maxH 以内并覆盖原文件，不会放大
func Fit(ctx context.Context, store storage.Storage, key string, maxW, maxH int) error {
	format, err := imaging.FormatFromFilename(key)
	if err != nil {
		return fmt.Errorf("detect format of %s: %w", key, err)
	}

	rc, err := store.Open(ctx, key)
	if err != nil {
		return fmt.Errorf("open %s: %w", key, err)
	}
	img, err := imaging.Decode(rc, imaging.AutoOrientation(true))
	rc.Close()
	if err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}

	// 已经足够小
	bounds := img.Bounds()
	if bounds.Dx() <= maxW && bounds.Dy() <= maxH {
		return nil
	}

	var buf bytes.Buffer
	if err = imaging.Encode(&buf, imaging.Fit(img, maxW, maxH, imaging.Lanczos), format); err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	if err = store.Save(ctx, key, &buf); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}

	return nil
}

func Process(ctx context.Context, store storage.Storage, job *types.ResizeJob) error {
	maxW, maxH, err := Bounds(job.Kind)
	if err != nil {
		return err
	}
	return Fit(ctx, store, job.Key, maxW, maxH)
}
