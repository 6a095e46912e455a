package inits

import (
	"fmt"
	"github.com/joho/godotenv"
	"library-catalog/app/server/config"
	"os"
	"strings"
)

func Config() (*config.Config, error) {
	// 有 .env 文件就先加载，已经存在的环境变量不会被覆盖
	_ = godotenv.Load()

	var cfg config.Config
	{
		mode, exist := os.LookupEnv("MODE")
		cfg.System.IsProd = exist && strings.HasPrefix(strings.ToLower(mode), "p")
	}

	if listen, exist := os.LookupEnv("LISTEN"); !exist {
		cfg.System.Listen = ":1323" // 默认监听地址
	} else {
		cfg.System.Listen = listen
	}

	if dbconn, exist := os.LookupEnv("DB_CONN"); !exist {
		return nil, fmt.Errorf("DB_CONN environment variable not set")
	} else {
		cfg.System.DBConnectionString = dbconn
	}

	if redisconn, exist := os.LookupEnv("REDIS_CONN"); !exist {
		return nil, fmt.Errorf("REDIS_CONN environment variable not set")
	} else {
		cfg.System.RedisConnectionString = redisconn
	}

	if sigsk, exist := os.LookupEnv("SIGNATURE_SECRET_KEY"); !exist {
		return nil, fmt.Errorf("SIGNATURE_SECRET_KEY environment variable not set")
	} else {
		cfg.Security.SignatureSecretKey = sigsk
	}

	cfg.Security.AdminPassword = os.Getenv("ADMIN_PASSWORD")

	cfg.Media = MediaConfig()

	return &cfg, nil
}

// MediaConfig 存储相关的配置， worker 也会使用
func MediaConfig() config.Media {
	var media config.Media

	if root, exist := os.LookupEnv("MEDIA_ROOT"); !exist {
		media.Root = "./media"
	} else {
		media.Root = root
	}

	media.S3Bucket = os.Getenv("S3_BUCKET")
	media.S3Endpoint = os.Getenv("S3_ENDPOINT")
	media.S3Region = os.Getenv("S3_REGION")
	media.S3AccessKey = os.Getenv("S3_ACCESS_KEY_ID")
	media.S3SecretKey = os.Getenv("S3_SECRET_ACCESS_KEY")
	media.S3UsePathStyle = strings.ToLower(os.Getenv("S3_USE_PATH_STYLE")) == "true"

	return media
}
