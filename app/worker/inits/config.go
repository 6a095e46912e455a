package inits

import (
	"fmt"
	"github.com/joho/godotenv"
	serverinits "library-catalog/app/server/inits"
	"library-catalog/app/worker/config"
	"os"
	"strings"
	"time"
)

func Config() (*config.Config, error) {
	_ = godotenv.Load()

	var cfg config.Config
	{
		mode, exist := os.LookupEnv("MODE")
		cfg.IsProd = exist && strings.HasPrefix(strings.ToLower(mode), "p")
	}

	if redisconn, exist := os.LookupEnv("REDIS_CONN"); !exist {
		return nil, fmt.Errorf("REDIS_CONN environment variable not set")
	} else {
		cfg.RedisConnectionString = redisconn
	}

	if resizeIntervalStr, exist := os.LookupEnv("RESIZE_INTERVAL"); !exist {
		cfg.ResizeInterval = 10 * time.Second // 默认每 10 秒一次
	} else if interval, err := time.ParseDuration(resizeIntervalStr); err != nil || interval <= 0 {
		return nil, fmt.Errorf("RESIZE_INTERVAL should be a valid positive duration")
	} else {
		cfg.ResizeInterval = interval
	}

	cfg.Media = serverinits.MediaConfig()

	return &cfg, nil
}
