package handlers

import (
	"fmt"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"library-catalog/app/server/accounts"
	"net/http"
)

type userCreateForm struct {
	Username  string `form:"username" json:"username" validate:"required,max=150"`
	FirstName string `form:"first_name" json:"first_name" validate:"max=150"`
	LastName  string `form:"last_name" json:"last_name" validate:"max=150"`
	Email     string `form:"email" json:"email" validate:"omitempty,email,max=254"`
	Password  string `form:"password" json:"password" validate:"required"`
	IsAdmin   bool   `form:"is_admin" json:"is_admin"`
}

func (f *userCreateForm) redact() interface{} {
	return &userCreateForm{
		Username:  f.Username,
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		IsAdmin:   f.IsAdmin,
	}
}

func (a *App) UserCreate(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req userCreateForm
	if ok, err := a.bindForm(c, &req); !ok {
		return err
	}

	// 检查冲突
	if taken, err := accounts.UsernameTaken(rctx, a.db, req.Username, 0); err != nil {
		a.l.Error("failed to check username", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	} else if taken {
		return a.formEr(c, map[string]string{"username": fmt.Sprintf("Username %s is already taken!", req.Username)}, req.redact())
	}
	if req.Email != "" {
		if taken, err := accounts.EmailTaken(rctx, a.db, req.Email, 0); err != nil {
			a.l.Error("failed to check email", zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		} else if taken {
			return a.formEr(c, map[string]string{"email": fmt.Sprintf("User with e-mail %s is already registered!", req.Email)}, req.redact())
		}
	}

	// 创建用户，同时创建 Profile
	user, err := accounts.Create(rctx, a.db, accounts.NewAccount{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		IsAdmin:   req.IsAdmin,
	})
	if err != nil {
		a.l.Error("failed to create user", zap.String("username", req.Username), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusCreated, user)
}
