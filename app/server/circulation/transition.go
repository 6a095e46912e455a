package circulation

import "library-catalog/app/server/models"

// 所有状态的固定顺序，用于输出
var statusOrder = []models.LoanStatus{
	models.StatusProcessing,
	models.StatusTaken,
	models.StatusAvailable,
	models.StatusReserved,
}

// 允许的状态变更 (当前状态 -> 目标状态)，保持原状态总是允许的
var transitions = map[models.LoanStatus]map[models.LoanStatus]bool{
	models.StatusProcessing: {
		models.StatusAvailable: true,
	},
	models.StatusAvailable: {
		models.StatusProcessing: true,
		models.StatusReserved:   true,
		models.StatusTaken:      true,
	},
	models.StatusReserved: {
		models.StatusAvailable: true,
		models.StatusTaken:     true,
	},
	models.StatusTaken: {
		models.StatusProcessing: true,
		models.StatusAvailable:  true,
	},
}

func CanTransition(from, to models.LoanStatus) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if from == to {
		return true
	}
	return transitions[from][to]
}

// NextStatuses 列出从 from 出发可以选择的状态（包含 from 本身）
func NextStatuses(from models.LoanStatus) []models.LoanStatus {
	var next []models.LoanStatus
	for _, to := range statusOrder {
		if CanTransition(from, to) {
			next = append(next, to)
		}
	}
	return next
}
