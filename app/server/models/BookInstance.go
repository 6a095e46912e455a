package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

type LoanStatus string

const (
	StatusProcessing LoanStatus = "p"
	StatusTaken      LoanStatus = "t"
	StatusAvailable  LoanStatus = "a"
	StatusReserved   LoanStatus = "r"
)

var loanStatusNames = map[LoanStatus]string{
	StatusProcessing: "Processing",
	StatusTaken:      "Taken",
	StatusAvailable:  "Available",
	StatusReserved:   "Reserved",
}

func (s LoanStatus) Valid() bool {
	_, ok := loanStatusNames[s]
	return ok
}

func (s LoanStatus) String() string {
	if name, ok := loanStatusNames[s]; ok {
		return name
	}
	return string(s)
}

type BookInstance struct {
	InstanceID uuid.UUID `gorm:"column:instance_id;type:uuid;primaryKey" json:"instance_id"` // 随机生成，不是自增序号
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`

	BookID     *uint      `gorm:"column:book_id;index" json:"book_id"`
	DueBack    *time.Time `gorm:"column:due_back;type:date;index" json:"due_back"` // 归还日期，可以为空
	ReaderID   *uint      `gorm:"column:reader_id;index" json:"reader_id"`         // 只有 Taken 状态下才有借阅人
	BookStatus LoanStatus `gorm:"column:book_status;size:1;default:a" json:"book_status"`

	// 连接模型时使用
	Book   *Book `gorm:"foreignKey:BookID;constraint:OnDelete:SET NULL" json:"book,omitempty"`
	Reader *User `gorm:"foreignKey:ReaderID;constraint:OnDelete:SET NULL" json:"-"`
}

// InstanceOrder 最早到期的排在前面
const InstanceOrder = "due_back ASC"

func (i *BookInstance) BeforeCreate(tx *gorm.DB) (err error) {
	if i.InstanceID == uuid.Nil {
		i.InstanceID = uuid.New()
	}
	if i.BookStatus == "" {
		i.BookStatus = StatusAvailable
	}
	return
}

// IsOverdue 按日历日期比较，没有归还日期的永远不会逾期
func (i *BookInstance) IsOverdue(now time.Time) bool {
	if i.DueBack == nil {
		return false
	}
	due := time.Date(i.DueBack.Year(), i.DueBack.Month(), i.DueBack.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return due.Before(today)
}
