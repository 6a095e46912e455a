package inits

import (
	"context"
	"fmt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"library-catalog/app/server/accounts"
	"library-catalog/app/server/models"
)

func DB(conn string, adminPassword string) (db *gorm.DB, err error) {
	// 打开连接
	if db, err = gorm.Open(postgres.Open(conn), &gorm.Config{}); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// 迁移
	if err = Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// 初始化启动数据
	if err = initData(db, adminPassword); err != nil {
		return nil, fmt.Errorf("failed to init data into database: %w", err)
	}

	// 返回
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Genre{},
		&models.Author{},
		&models.Book{},
		&models.BookInstance{},
		&models.BookReview{},
	)
}

func initData(db *gorm.DB, adminPassword string) (err error) {
	// 没有设置密码就不创建初始管理员
	if adminPassword == "" {
		return nil
	}

	// 查询现有记录数量
	var counter int64

	// 初始化用户
	if err = db.Model(&models.User{}).Count(&counter).Error; err != nil {
		return fmt.Errorf("failed to get user count: %w", err)
	} else if counter == 0 { // 没有任何用户，添加初始管理员（同时创建 Profile ）
		if _, err = accounts.Create(context.Background(), db, accounts.NewAccount{
			Username:  "admin",
			FirstName: "Library",
			LastName:  "Admin",
			IsAdmin:   true,
			Password:  adminPassword,
		}); err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
	}

	// 已有数据或全部导入成功
	return nil
}
