package handlers

import (
	"errors"
	"fmt"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"library-catalog/app/server/accounts"
	"net/http"
)

type registrationForm struct {
	Username  string `form:"username" json:"username" validate:"required,max=150"`
	FirstName string `form:"first_name" json:"first_name" validate:"max=150"`
	LastName  string `form:"last_name" json:"last_name" validate:"max=150"`
	Email     string `form:"email" json:"email" validate:"required,email,max=254"`
	Password  string `form:"password" json:"password" validate:"required"`
	Password2 string `form:"password2" json:"password2" validate:"required"`
}

// 密码不回显
func (f *registrationForm) redact() interface{} {
	return &registrationForm{
		Username:  f.Username,
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
	}
}

func (a *App) RegisterForm(c echo.Context) error {
	return c.JSON(http.StatusOK, &registrationForm{})
}

func (a *App) Register(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req registrationForm
	if ok, err := a.bindForm(c, &req); !ok {
		return err
	}

	user, err := accounts.Register(rctx, a.db, accounts.Registration{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Password2: req.Password2,
	})
	if err != nil {
		var field, msg string
		switch {
		case errors.Is(err, accounts.ErrPasswordMismatch):
			field, msg = "password2", "Passwords do not match!"
		case errors.Is(err, accounts.ErrUsernameTaken):
			field, msg = "username", fmt.Sprintf("Username %s is already taken!", req.Username)
		case errors.Is(err, accounts.ErrEmailTaken):
			field, msg = "email", fmt.Sprintf("User with e-mail %s is already registered!", req.Email)
		default:
			a.l.Error("failed to register user", zap.String("username", req.Username), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}

		return c.JSON(http.StatusBadRequest, &FormErrors{
			Message: msg,
			Fields:  map[string]string{field: msg},
			Input:   req.redact(),
		})
	}

	return a.seeOther(c, "/account/login/", user)
}
