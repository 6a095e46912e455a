package accounts

import (
	"context"
	"gorm.io/gorm"
	"library-catalog/app/server/models"
)

type Registration struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	Password  string
	Password2 string
}

// Register 依次检查：两次密码一致、用户名未被占用、邮箱未被占用，第一个失败的检查直接返回
func Register(ctx context.Context, db *gorm.DB, reg Registration) (*models.User, error) {
	if reg.Password != reg.Password2 {
		return nil, ErrPasswordMismatch
	}

	if taken, err := UsernameTaken(ctx, db, reg.Username, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrUsernameTaken
	}

	if taken, err := EmailTaken(ctx, db, reg.Email, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}

	return Create(ctx, db, NewAccount{
		Username:  reg.Username,
		FirstName: reg.FirstName,
		LastName:  reg.LastName,
		Email:     reg.Email,
		Password:  reg.Password,
	})
}
