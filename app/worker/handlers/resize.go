package handlers

import (
	"context"
	"go.uber.org/zap"
	"library-catalog/app/server/media"
)

func (a *App) drain() {
	// 设置并发锁，避免同时处理
	if !a.lock.TryLock() {
		// 上一轮正在处理，跳过这一轮
		return
	}
	defer a.lock.Unlock()

	a.process(context.Background())
}

// process 处理队列中的全部任务，失败的任务记录日志后丢弃，返回成功处理的数量
func (a *App) process(ctx context.Context) int {
	done := 0
	for {
		job, err := a.queue.Pop(ctx)
		if err != nil {
			// 无法解析的任务已经出队，继续下一个
			a.l.Error("failed to pop resize job", zap.Error(err))
			if ctx.Err() != nil {
				return done
			}
			if n, lenErr := a.queue.Len(ctx); lenErr != nil || n == 0 {
				return done
			}
			continue
		}
		if job == nil {
			// 队列空了
			return done
		}

		if err = media.Process(ctx, a.store, job); err != nil {
			a.l.Error("failed to resize image",
				zap.String("kind", string(job.Kind)),
				zap.Uint("id", job.ID),
				zap.String("key", job.Key),
				zap.Error(err),
			)
			continue
		}

		a.l.Info("image resized",
			zap.String("kind", string(job.Kind)),
			zap.Uint("id", job.ID),
			zap.String("key", job.Key),
		)
		done++
	}
}
