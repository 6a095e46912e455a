package models

type Genre struct {
	ID   uint   `gorm:"column:id;primaryKey" json:"id"`
	Name string `gorm:"column:name;size:100" json:"name"` // 类型名称
}
