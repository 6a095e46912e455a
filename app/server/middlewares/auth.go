package middlewares

import (
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"library-catalog/app/server/constants"
	"library-catalog/app/server/jwt"
	"net/http"
)

const userContextKey = "user"

// Auth 从 Authorization 头或 cookie 中解析令牌，没有令牌或令牌无效时按匿名用户处理
func Auth(j *jwt.JWT) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  userContextKey,
		TokenLookup: "header:Authorization:Bearer ,cookie:" + constants.TokenCookieName,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return j.ParseUser(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return nil
		},
		ContinueOnIgnoredError: true,
	})
}

// CurrentUser 当前登录的用户，匿名时返回 nil
func CurrentUser(c echo.Context) *jwt.User {
	user, _ := c.Get(userContextKey).(*jwt.User)
	return user
}

func RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if CurrentUser(c) == nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": http.StatusText(http.StatusUnauthorized)})
		}
		return next(c)
	}
}

func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := CurrentUser(c)
		if user == nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": http.StatusText(http.StatusUnauthorized)})
		}
		if !user.IsAdmin {
			return c.JSON(http.StatusForbidden, echo.Map{"message": http.StatusText(http.StatusForbidden)})
		}
		return next(c)
	}
}
