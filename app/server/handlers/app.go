package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"library-catalog/app/server/jwt"
	"library-catalog/app/server/media"
	"library-catalog/app/server/storage"
	"time"
)

type App struct {
	l        *zap.Logger         // 日志
	db       *gorm.DB            // 数据库
	rdb      *redis.Client       // Redis ，会话与图片处理队列
	jwt      *jwt.JWT            // JWT ，用于无状态验证
	store    storage.Storage     // 封面与头像的存储
	queue    *media.Queue        // 图片处理队列
	validate *validator.Validate // 表单校验
	now      func() time.Time
}

func NewApp(l *zap.Logger, db *gorm.DB, rdb *redis.Client, j *jwt.JWT, store storage.Storage) *App {
	return &App{
		l:        l,
		db:       db,
		rdb:      rdb,
		jwt:      j,
		store:    store,
		queue:    media.NewQueue(rdb),
		validate: newValidator(),
		now:      time.Now,
	}
}
