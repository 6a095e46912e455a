package middlewares

import (
	"fmt"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"library-catalog/app/server/constants"
	"net/http"
)

const sessionContextKey = "session"

// Session 为每个访客（包括匿名访客）分配一个会话，会话数据保存在 redis 里
func Session(rdb *redis.Client, l *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rctx := c.Request().Context()

			// 提取会话 ID ，无效的直接换一个新的
			var sid string
			if cookie, err := c.Cookie(constants.SessionCookieName); err == nil {
				if parsed, err := uuid.Parse(cookie.Value); err == nil {
					sid = parsed.String()
				}
			}
			if sid == "" {
				sid = uuid.NewString()
			}

			// 每次访问都续期
			if err := rdb.Expire(rctx, fmt.Sprintf(constants.CacheKeySession, sid), constants.CacheExpireSession).Err(); err != nil {
				l.Error("failed to refresh session", zap.String("session", sid), zap.Error(err))
			}
			c.SetCookie(&http.Cookie{
				Name:     constants.SessionCookieName,
				Value:    sid,
				Path:     "/",
				MaxAge:   int(constants.CacheExpireSession.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})

			// 设置 context
			c.Set(sessionContextKey, sid)

			// 继续处理
			return next(c)
		}
	}
}

// SessionKey 当前请求会话在 redis 中的键
func SessionKey(c echo.Context) string {
	sid, _ := c.Get(sessionContextKey).(string)
	if sid == "" {
		return ""
	}
	return fmt.Sprintf(constants.CacheKeySession, sid)
}
