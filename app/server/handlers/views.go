package handlers

import (
	"library-catalog/app/server/models"
	"time"
)

// InstanceInfo 副本信息，附带状态名称与是否逾期
type InstanceInfo struct {
	*models.BookInstance
	StatusDisplay string `json:"status_display"`
	IsOverdue     bool   `json:"is_overdue"`
}

type ReviewInfo struct {
	ID          uint      `json:"id"`
	Content     string    `json:"content"`
	DateCreated time.Time `json:"date_created"`
	Reviewer    string    `json:"reviewer"` // 用户名，用户被删除后为空
}

type BookDetail struct {
	Book       *models.Book      `json:"book"`
	Instances  []InstanceInfo    `json:"instances"`
	Reviews    []ReviewInfo      `json:"reviews"`
	FormErrors map[string]string `json:"form_errors,omitempty"`
	Input      interface{}       `json:"input,omitempty"`
}

type StatusChoice struct {
	Value models.LoanStatus `json:"value"`
	Label string            `json:"label"`
}

type BookChoice struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

func (a *App) instanceInfo(instance *models.BookInstance) InstanceInfo {
	return InstanceInfo{
		BookInstance:  instance,
		StatusDisplay: instance.BookStatus.String(),
		IsOverdue:     instance.IsOverdue(a.now()),
	}
}

func (a *App) instanceInfos(instances []models.BookInstance) []InstanceInfo {
	infos := []InstanceInfo{}
	for i := range instances {
		infos = append(infos, a.instanceInfo(&instances[i]))
	}
	return infos
}

func statusChoices(statuses []models.LoanStatus) []StatusChoice {
	choices := []StatusChoice{}
	for _, s := range statuses {
		choices = append(choices, StatusChoice{Value: s, Label: s.String()})
	}
	return choices
}
