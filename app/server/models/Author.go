package models

import "time"

type Author struct {
	ID        uint      `gorm:"column:id;primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	FirstName   string `gorm:"column:first_name;size:100;index:idx_author_name,priority:2" json:"first_name"`
	LastName    string `gorm:"column:last_name;size:100;index:idx_author_name,priority:1" json:"last_name"`
	Description string `gorm:"column:description" json:"description"` // 富文本简介，原样存储

	// 连接模型时使用
	Books []Book `gorm:"foreignKey:AuthorID" json:"books,omitempty"`
}

// AuthorOrder 作者列表的默认排序
const AuthorOrder = "last_name ASC, first_name ASC, id ASC"
