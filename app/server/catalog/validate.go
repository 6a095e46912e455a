package catalog

import (
	"errors"
	"fmt"
	"gorm.io/gorm"
	"library-catalog/app/server/models"
	"net/http"
)

var ErrUnknownIDs = errors.New("count ids mismatch")

// ValidateIDs 检查所有 id 都存在，返回的状态码可直接用于响应
func ValidateIDs[M models.Genre | models.Author | models.Book](db *gorm.DB, ids []uint) (error, int) {
	if len(ids) > 0 {
		var (
			count int64
			model M
		)
		unique := make(map[uint]struct{}, len(ids))
		for _, id := range ids {
			unique[id] = struct{}{}
		}
		if err := db.
			Model(&model).
			Where("id IN ?", ids).
			Count(&count).Error; err != nil {
			// 查询失败
			return fmt.Errorf("count: %w", err), http.StatusInternalServerError
		} else if int(count) != len(unique) {
			// 数量对不上
			return ErrUnknownIDs, http.StatusBadRequest
		}
	}

	return nil, http.StatusOK
}
