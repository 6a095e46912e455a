package circulation

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"library-catalog/app/server/catalog"
	"library-catalog/app/server/models"
	"net/http"
	"time"
)

var (
	ErrNotOwner         = errors.New("instance is not held by this reader")
	ErrTransitionDenied = errors.New("status transition is not allowed")
	ErrBookNotFound     = errors.New("book does not exist")
	ErrReaderRequired   = errors.New("taken instance requires a reader")
)

// Borrow 为读者创建一个新的副本，状态固定为 Taken 。
// 不检查这本书是否还有可借的副本，每次借阅都会产生新的副本。
func Borrow(ctx context.Context, db *gorm.DB, readerID uint, bookID uint, dueBack time.Time) (*models.BookInstance, error) {
	if err, statusCode := catalog.ValidateIDs[models.Book](db.WithContext(ctx), []uint{bookID}); err != nil {
		if statusCode == http.StatusBadRequest {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	instance := models.BookInstance{
		BookID:     &bookID,
		DueBack:    &dueBack,
		ReaderID:   &readerID,
		BookStatus: models.StatusTaken,
	}
	if err := db.WithContext(ctx).Omit("Book", "Reader").Create(&instance).Error; err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}

	return &instance, nil
}

// Change 读者可以修改的字段， nil 表示不修改
type Change struct {
	BookID  *uint
	DueBack *time.Time
	Status  *models.LoanStatus
}

// Update 只有当前借阅人可以修改。不存在与不属于该读者的副本都返回 ErrNotOwner 。
func Update(ctx context.Context, db *gorm.DB, readerID uint, id uuid.UUID, change Change) (*models.BookInstance, error) {
	var instance models.BookInstance

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&instance, "instance_id = ? AND reader_id = ?", id, readerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotOwner
			}
			return fmt.Errorf("find instance: %w", err)
		}

		if change.BookID != nil {
			if err, statusCode := catalog.ValidateIDs[models.Book](tx, []uint{*change.BookID}); err != nil {
				if statusCode == http.StatusBadRequest {
					return ErrBookNotFound
				}
				return err
			}
			instance.BookID = change.BookID
		}
		if change.DueBack != nil {
			instance.DueBack = change.DueBack
		}

		previous := instance.BookStatus
		if change.Status != nil {
			if err := applyStatus(&instance, *change.Status, &readerID); err != nil {
				return err
			}
		}

		// 以借阅人和原状态作为条件，避免覆盖并发的修改
		res := tx.Model(&models.BookInstance{}).
			Where("instance_id = ? AND reader_id = ? AND book_status = ?", id, readerID, previous).
			Updates(map[string]interface{}{
				"book_id":     instance.BookID,
				"due_back":    instance.DueBack,
				"reader_id":   instance.ReaderID,
				"book_status": instance.BookStatus,
			})
		if res.Error != nil {
			return fmt.Errorf("update instance: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotOwner
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &instance, nil
}

// SetStatus 管理接口使用：按状态表变更任意副本的状态，进入 Taken 时需要指定借阅人
func SetStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, to models.LoanStatus, readerID *uint) (*models.BookInstance, error) {
	var instance models.BookInstance

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&instance, "instance_id = ?", id).Error; err != nil {
			return err
		}

		previous := instance.BookStatus
		if err := applyStatus(&instance, to, readerID); err != nil {
			return err
		}

		res := tx.Model(&models.BookInstance{}).
			Where("instance_id = ? AND book_status = ?", id, previous).
			Updates(map[string]interface{}{
				"reader_id":   instance.ReaderID,
				"book_status": instance.BookStatus,
			})
		if res.Error != nil {
			return fmt.Errorf("update instance: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &instance, nil
}

// applyStatus 检查状态表，并维护“只有 Taken 状态才有借阅人”
func applyStatus(instance *models.BookInstance, to models.LoanStatus, readerID *uint) error {
	if !CanTransition(instance.BookStatus, to) {
		return ErrTransitionDenied
	}

	if to == models.StatusTaken {
		if readerID == nil {
			if instance.ReaderID == nil {
				return ErrReaderRequired
			}
		} else {
			instance.ReaderID = readerID
		}
	} else {
		instance.ReaderID = nil
	}
	instance.BookStatus = to

	return nil
}

// Delete 只有当前借阅人可以删除，删除是永久的
func Delete(ctx context.Context, db *gorm.DB, readerID uint, id uuid.UUID) error {
	res := db.WithContext(ctx).
		Where("instance_id = ? AND reader_id = ?", id, readerID).
		Delete(&models.BookInstance{})
	if res.Error != nil {
		return fmt.Errorf("delete instance: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotOwner
	}

	return nil
}

// ListTaken 读者当前借着的副本，最早到期的在前
func ListTaken(ctx context.Context, db *gorm.DB, readerID uint, offset, limit int) ([]models.BookInstance, int64, error) {
	var (
		instances []models.BookInstance
		count     int64
	)

	base := func() *gorm.DB {
		return db.WithContext(ctx).
			Model(&models.BookInstance{}).
			Where("reader_id = ? AND book_status = ?", readerID, models.StatusTaken)
	}

	if err := base().Preload("Book").Order(models.InstanceOrder).Order("instance_id ASC").Limit(limit).Offset(offset).Find(&instances).Error; err != nil {
		return nil, 0, fmt.Errorf("list instances: %w", err)
	}
	if err := base().Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("count instances: %w", err)
	}

	return instances, count, nil
}
