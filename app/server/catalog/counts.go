package catalog

import (
	"context"
	"fmt"
	"gorm.io/gorm"
	"library-catalog/app/server/models"
)

type Counts struct {
	Books         int64 `json:"books"`
	BookInstances int64 `json:"book_instances"`
	Authors       int64 `json:"authors"`
	Available     int64 `json:"available"`
}

func CountAll(ctx context.Context, db *gorm.DB) (*Counts, error) {
	var counts Counts
	tx := db.WithContext(ctx)

	if err := tx.Model(&models.Book{}).Count(&counts.Books).Error; err != nil {
		return nil, fmt.Errorf("count books: %w", err)
	}
	if err := tx.Model(&models.BookInstance{}).Count(&counts.BookInstances).Error; err != nil {
		return nil, fmt.Errorf("count instances: %w", err)
	}
	if err := tx.Model(&models.BookInstance{}).Where("book_status = ?", models.StatusAvailable).Count(&counts.Available).Error; err != nil {
		return nil, fmt.Errorf("count available instances: %w", err)
	}
	if err := tx.Model(&models.Author{}).Count(&counts.Authors).Error; err != nil {
		return nil, fmt.Errorf("count authors: %w", err)
	}

	return &counts, nil
}
