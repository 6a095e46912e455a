package models

import "time"

type Book struct {
	ID        uint      `gorm:"column:id;primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	// 目录信息
	Title       string  `gorm:"column:title;size:200" json:"title"`
	Description string  `gorm:"column:description;size:1000" json:"description"`
	ISBN        string  `gorm:"column:isbn;size:13" json:"isbn"`
	Cover       *string `gorm:"column:cover" json:"cover"` // 封面在存储中的路径， NULL 表示没有封面

	// 作者被删除时置空
	AuthorID *uint `gorm:"column:author_id;index" json:"author_id"`

	// 连接模型时使用
	Author    *Author        `gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL" json:"author,omitempty"`
	Genres    []Genre        `gorm:"many2many:book_genres" json:"genres,omitempty"`
	Instances []BookInstance `gorm:"foreignKey:BookID" json:"instances,omitempty"`
	Reviews   []BookReview   `gorm:"foreignKey:BookID" json:"reviews,omitempty"`
}
