package config

import (
	serverconfig "library-catalog/app/server/config"
	"time"
)

type Config struct {
	// 基础配置
	IsProd bool

	// 任务队列
	RedisConnectionString string
	ResizeInterval        time.Duration

	// 图片存储，与 Server 共用同一份配置
	Media serverconfig.Media
}
