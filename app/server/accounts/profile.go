package accounts

import (
	"context"
	"fmt"
	"gorm.io/gorm"
	"library-catalog/app/server/models"
)

type AccountChanges struct {
	Username *string
	Email    *string
	Photo    *string // 新头像在存储中的路径
}

// GetWithProfile 读取用户及其 Profile ，旧数据缺少 Profile 时补建
func GetWithProfile(ctx context.Context, db *gorm.DB, userID uint) (*models.User, error) {
	var user models.User
	if err := db.WithContext(ctx).Preload("Profile").First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}

	if user.Profile == nil {
		profile := models.Profile{UserID: user.ID, Photo: models.DefaultProfilePhoto}
		if err := db.WithContext(ctx).Create(&profile).Error; err != nil {
			return nil, fmt.Errorf("create missing profile: %w", err)
		}
		user.Profile = &profile
	}

	return &user, nil
}

// UpdateAccount 更新账号信息，并且每次都会连同 Profile 一起保存
func UpdateAccount(ctx context.Context, db *gorm.DB, userID uint, changes AccountChanges) (*models.User, error) {
	user, err := GetWithProfile(ctx, db, userID)
	if err != nil {
		return nil, err
	}

	if changes.Username != nil && *changes.Username != user.Username {
		if taken, err := UsernameTaken(ctx, db, *changes.Username, user.ID); err != nil {
			return nil, err
		} else if taken {
			return nil, ErrUsernameTaken
		}
		user.Username = *changes.Username
	}

	if changes.Email != nil && *changes.Email != user.Email {
		if taken, err := EmailTaken(ctx, db, *changes.Email, user.ID); err != nil {
			return nil, err
		} else if taken {
			return nil, ErrEmailTaken
		}
		user.Email = *changes.Email
	}

	if changes.Photo != nil {
		user.Profile.Photo = *changes.Photo
	}

	if err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(user).Select("username", "email").Updates(user).Error; err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		if err := tx.Save(user.Profile).Error; err != nil {
			return fmt.Errorf("save profile: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return user, nil
}

// NeedsResize 默认头像是共享文件，不做处理
func NeedsResize(profile *models.Profile) bool {
	return profile != nil && profile.Photo != "" && profile.Photo != models.DefaultProfilePhoto
}
