package accounts

import (
	"context"
	"errors"
	"fmt"
	"github.com/alexedwards/argon2id"
	"gorm.io/gorm"
	"library-catalog/app/server/models"
)

var (
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type NewAccount struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	Password  string // 明文，创建时进行 hash
	IsAdmin   bool
}

// Create 创建账号并同时创建其唯一的 Profile （默认头像），所有创建账号的途径都要经过这里
func Create(ctx context.Context, db *gorm.DB, acc NewAccount) (*models.User, error) {
	// 处理密码
	passwordHash, err := argon2id.CreateHash(acc.Password, argon2id.DefaultParams)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username:  acc.Username,
		FirstName: acc.FirstName,
		LastName:  acc.LastName,
		Email:     acc.Email,
		IsAdmin:   acc.IsAdmin,
		Password:  passwordHash,
	}

	if err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Profile").Create(&user).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		profile := models.Profile{
			UserID: user.ID,
			Photo:  models.DefaultProfilePhoto,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return fmt.Errorf("create profile: %w", err)
		}
		user.Profile = &profile

		return nil
	}); err != nil {
		return nil, err
	}

	return &user, nil
}

// UsernameTaken 检查用户名是否被占用， exceptID 不为 0 时排除该用户自己
func UsernameTaken(ctx context.Context, db *gorm.DB, username string, exceptID uint) (bool, error) {
	return exists(ctx, db, "username = ?", username, exceptID)
}

func EmailTaken(ctx context.Context, db *gorm.DB, email string, exceptID uint) (bool, error) {
	return exists(ctx, db, "email = ?", email, exceptID)
}

func exists(ctx context.Context, db *gorm.DB, cond string, value string, exceptID uint) (bool, error) {
	var count int64
	q := db.WithContext(ctx).Model(&models.User{}).Where(cond, value)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return count > 0, nil
}

// Authenticate 校验用户名和密码，不区分用户不存在与密码错误
func Authenticate(ctx context.Context, db *gorm.DB, username, password string) (*models.User, error) {
	var user models.User
	if err := db.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	// 提取密码 hash 并进行校验
	if match, _, err := argon2id.CheckHash(password, user.Password); err != nil {
		return nil, fmt.Errorf("check password: %w", err)
	} else if !match {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}
