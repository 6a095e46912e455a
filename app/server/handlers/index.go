package handlers

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"library-catalog/app/server/catalog"
	"library-catalog/app/server/constants"
	"library-catalog/app/server/middlewares"
	"net/http"
)

type Dashboard struct {
	*catalog.Counts
	NumVisits int64 `json:"num_visits"`
}

func (a *App) Index(c echo.Context) error {
	rctx := c.Request().Context()

	counts, err := catalog.CountAll(rctx, a.db)
	if err != nil {
		a.l.Error("failed to count catalog", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 会话存储出错不影响首页展示
	visits, err := a.countVisit(c)
	if err != nil {
		a.l.Error("failed to count visit", zap.Error(err))
	}

	return c.JSON(http.StatusOK, &Dashboard{
		Counts:    counts,
		NumVisits: visits,
	})
}

// countVisit 增加当前会话的访问次数，返回包括本次在内的次数
func (a *App) countVisit(c echo.Context) (int64, error) {
	key := middlewares.SessionKey(c)
	if key == "" {
		return 0, nil
	}

	rctx := c.Request().Context()
	pipe := a.rdb.TxPipeline()
	incr := pipe.HIncrBy(rctx, key, "num_visits", 1)
	pipe.Expire(rctx, key, constants.CacheExpireSession)
	if _, err := pipe.Exec(rctx); err != nil {
		return 0, err
	}

	return incr.Val(), nil
}
