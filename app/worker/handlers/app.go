package handlers

import (
	"go.uber.org/zap"
	"library-catalog/app/server/media"
	"library-catalog/app/server/storage"
	"library-catalog/app/worker/config"
	"sync"
	"time"
)

type App struct {
	cfg   *config.Config
	l     *zap.Logger
	store storage.Storage
	queue *media.Queue

	ticker   *time.Ticker
	stopChan chan struct{}
	done     chan struct{}
	lock     sync.Mutex
}

func NewApp(cfg *config.Config, l *zap.Logger, store storage.Storage, queue *media.Queue) *App {
	return &App{
		cfg:   cfg,
		l:     l,
		store: store,
		queue: queue,
	}
}

func (a *App) Start() {
	a.ticker = time.NewTicker(a.cfg.ResizeInterval)
	a.stopChan = make(chan struct{})
	a.done = make(chan struct{})
	go a.loop()
}

func (a *App) loop() {
	defer close(a.done)
	for {
		select {
		case <-a.ticker.C:
			a.l.Debug("resize loop")
			a.drain()
		case <-a.stopChan:
			a.l.Debug("stop resize loop")
			return
		}
	}
}

// Stop 等待正在进行的一轮处理结束
func (a *App) Stop() {
	a.ticker.Stop()
	close(a.stopChan)
	<-a.done
}
