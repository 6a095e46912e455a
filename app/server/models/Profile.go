package models

const DefaultProfilePhoto = "profile_pics/default.png"

type Profile struct {
	ID     uint   `gorm:"column:id;primaryKey" json:"id"`
	UserID uint   `gorm:"column:user_id;uniqueIndex" json:"user_id"` // 一对一
	Photo  string `gorm:"column:photo" json:"photo"`                 // 头像在存储中的路径
}
