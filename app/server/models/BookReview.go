package models

import "time"

type BookReview struct {
	ID          uint      `gorm:"column:id;primaryKey" json:"id"`
	BookID      *uint     `gorm:"column:book_id;index" json:"book_id"`
	ReviewerID  *uint     `gorm:"column:reviewer_id;index" json:"reviewer_id"`
	DateCreated time.Time `gorm:"column:date_created;autoCreateTime;<-:create" json:"date_created"` // 只在创建时写入
	Content     string    `gorm:"column:content;size:2000" json:"content"`

	Book     *Book `gorm:"foreignKey:BookID;constraint:OnDelete:SET NULL" json:"-"`
	Reviewer *User `gorm:"foreignKey:ReviewerID;constraint:OnDelete:SET NULL" json:"reviewer,omitempty"`
}

// ReviewOrder 新的评论排在前面
const ReviewOrder = "date_created DESC, id DESC"
