package media

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/redis/go-redis/v9"
	"library-catalog/app/server/constants"
	"library-catalog/app/server/types"
)

type Queue struct {
	rdb *redis.Client
}

func NewQueue(rdb *redis.Client) *Queue {
	return &Queue{rdb: rdb}
}

func (q *Queue) Push(ctx context.Context, job types.ResizeJob) error {
	jobBytes, err := json.Marshal(&job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}

	if err = q.rdb.RPush(ctx, constants.QueueKeyResize, jobBytes).Err(); err != nil {
		return fmt.Errorf("push job: %w", err)
	}

	return nil
}

// Pop 取出最早的任务，队列为空时返回 nil, nil
func (q *Queue) Pop(ctx context.Context) (*types.ResizeJob, error) {
	jobBytes, err := q.rdb.LPop(ctx, constants.QueueKeyResize).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("pop job: %w", err)
	}

	var job types.ResizeJob
	if err = json.Unmarshal(jobBytes, &job); err != nil {
		return nil, fmt.Errorf("unmarshal job %q: %w", jobBytes, err)
	}

	return &job, nil
}

func (q *Queue) Len(ctx context.Context) (int64, error) {
	return q.rdb.LLen(ctx, constants.QueueKeyResize).Result()
}
