package types

type ResizeJobKind string

const (
	ResizeJobAvatar ResizeJobKind = "avatar"
	ResizeJobCover  ResizeJobKind = "cover"
)

// ResizeJob 放入 redis 队列，由 worker 处理
type ResizeJob struct {
	Kind ResizeJobKind `json:"kind"`
	ID   uint          `json:"id"`  // Profile 或 Book 的 ID ，只用于日志
	Key  string        `json:"key"` // 图片在存储中的路径
}
