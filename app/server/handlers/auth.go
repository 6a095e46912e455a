package handlers

import (
	"errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"library-catalog/app/server/accounts"
	"library-catalog/app/server/constants"
	"library-catalog/app/server/jwt"
	"library-catalog/app/server/middlewares"
	"net/http"
	"time"
)

type loginForm struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

func (f *loginForm) redact() interface{} {
	return &loginForm{Username: f.Username}
}

type LoginToken struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

// currentUser 只能在 RequireLogin 之后使用
func (a *App) currentUser(c echo.Context) *jwt.User {
	return middlewares.CurrentUser(c)
}

func (a *App) AuthLogin(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req loginForm
	if ok, err := a.bindForm(c, &req); !ok {
		return err
	}

	// 校验用户名和密码
	user, err := accounts.Authenticate(rctx, a.db, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, accounts.ErrInvalidCredentials) {
			return a.er(c, http.StatusUnauthorized)
		} else {
			a.l.Error("failed to authenticate user", zap.String("username", req.Username), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	// 签出 JWT
	expires := a.now().Add(constants.AuthTokenDuration)
	token, err := a.jwt.SignToken(&jwt.User{
		ID:      user.ID,
		IsAdmin: user.IsAdmin,
		Expires: expires.Unix(),
	})
	if err != nil {
		a.l.Error("failed to sign token", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	c.SetCookie(&http.Cookie{
		Name:     constants.TokenCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	// 返回
	return c.JSON(http.StatusOK, &LoginToken{
		Token:   token,
		Expires: expires,
	})
}

func (a *App) AuthLogout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     constants.TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.NoContent(http.StatusNoContent)
}
