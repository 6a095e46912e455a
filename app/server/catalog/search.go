package catalog

import (
	"context"
	"fmt"
	"gorm.io/gorm"
	"library-catalog/app/server/models"
	"strings"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search 标题或简介中包含 query 的书（不区分大小写）。空 query 匹配全部。
func Search(ctx context.Context, db *gorm.DB, query string) ([]models.Book, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"

	var books []models.Book
	if err := db.WithContext(ctx).
		Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`, pattern, pattern).
		Order("id ASC").
		Find(&books).Error; err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}

	return books, nil
}
