package main

import (
	"context"
	"fmt"
	"go.uber.org/zap"
	serverinits "library-catalog/app/server/inits"
	"library-catalog/app/server/media"
	"library-catalog/app/server/storage"
	"library-catalog/app/worker/handlers"
	"library-catalog/app/worker/inits"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	// 初始化配置
	cfg, err := inits.Config()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	// 初始化日志
	l, err := serverinits.Logger(!cfg.IsProd, "worker")
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}

	// 切换日志系统
	l.Debug("logger initialized")

	// 初始化 redis 连接
	rdb, err := serverinits.Redis(cfg.RedisConnectionString)
	if err != nil {
		l.Fatal("error initializing Redis connection", zap.Error(err))
	}

	// 初始化文件存储
	store, err := storage.New(context.Background(), cfg.Media)
	if err != nil {
		l.Fatal("error initializing media storage", zap.Error(err))
	}

	// 开启处理循环
	handlerApp := handlers.NewApp(cfg, l, store, media.NewQueue(rdb))
	handlerApp.Start()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	handlerApp.Stop()
	l.Info("worker stopped")
}
