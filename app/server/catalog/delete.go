package catalog

import (
	"context"
	"fmt"
	"gorm.io/gorm"
	"library-catalog/app/server/models"
)

// DeleteAuthor 删除作者，其作品的作者字段置空而不是级联删除
func DeleteAuthor(ctx context.Context, db *gorm.DB, id uint) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Book{}).Where("author_id = ?", id).Update("author_id", nil).Error; err != nil {
			return fmt.Errorf("detach books: %w", err)
		}
		res := tx.Delete(&models.Author{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete author: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// DeleteBook 删除书，副本与评论保留但不再指向这本书
func DeleteBook(ctx context.Context, db *gorm.DB, id uint) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		book := models.Book{ID: id}
		if err := tx.Model(&book).Association("Genres").Clear(); err != nil {
			return fmt.Errorf("clear genres: %w", err)
		}
		if err := tx.Model(&models.BookInstance{}).Where("book_id = ?", id).Update("book_id", nil).Error; err != nil {
			return fmt.Errorf("detach instances: %w", err)
		}
		if err := tx.Model(&models.BookReview{}).Where("book_id = ?", id).Update("book_id", nil).Error; err != nil {
			return fmt.Errorf("detach reviews: %w", err)
		}
		res := tx.Delete(&models.Book{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete book: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
