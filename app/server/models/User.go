package models

import "time"

type User struct {
	ID        uint      `gorm:"column:id;primaryKey" json:"id"`
	CreatedAt time.Time `json:"date_joined"`
	UpdatedAt time.Time `json:"-"`

	// 基础信息
	Username  string `gorm:"column:username;size:150;uniqueIndex" json:"username"` // 用户名，全局唯一
	FirstName string `gorm:"column:first_name;size:150" json:"first_name"`
	LastName  string `gorm:"column:last_name;size:150" json:"last_name"`
	Email     string `gorm:"column:email;size:254;index" json:"email"` // 唯一性由注册流程检查
	IsAdmin   bool   `gorm:"column:is_admin" json:"is_admin"`          // 管理员可以维护目录数据

	// 登录相关
	Password string `gorm:"column:password" json:"-"` // 密码，使用 argon2id 储存

	Profile *Profile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
}
