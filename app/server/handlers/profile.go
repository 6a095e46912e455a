package handlers

import (
	"errors"
	"fmt"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"library-catalog/app/server/accounts"
	"library-catalog/app/server/constants"
	"library-catalog/app/server/types"
	"library-catalog/app/server/utils"
	"net/http"
)

type profileForm struct {
	Username string `form:"username" json:"username" validate:"required,max=150"`
	Email    string `form:"email" json:"email" validate:"required,email,max=254"`
}

func (a *App) ProfileGet(c echo.Context) error {
	user := a.currentUser(c)
	if user == nil {
		return a.er(c, http.StatusUnauthorized)
	}

	rctx := c.Request().Context()

	account, err := accounts.GetWithProfile(rctx, a.db, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		} else {
			a.l.Error("failed to get profile", zap.Uint("id", user.ID), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	return c.JSON(http.StatusOK, account)
}

// ProfileUpdate 保存账号与头像，头像缩放交给 worker 处理
func (a *App) ProfileUpdate(c echo.Context) error {
	user := a.currentUser(c)
	if user == nil {
		return a.er(c, http.StatusUnauthorized)
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req profileForm
	if ok, err := a.bindForm(c, &req); !ok {
		return err
	}

	// 保存上传的头像
	photo, fields, err := a.saveUpload(c, "photo", constants.AvatarPathPrefix)
	if err != nil {
		a.l.Error("failed to save avatar", zap.Uint("id", user.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	if fields != nil {
		return a.formEr(c, fields, &req)
	}

	changes := accounts.AccountChanges{
		Username: utils.P(req.Username),
		Email:    utils.P(req.Email),
	}
	if photo != "" {
		changes.Photo = utils.P(photo)
	}

	account, err := accounts.UpdateAccount(rctx, a.db, user.ID, changes)
	if err != nil {
		// 没有保存成功，新头像用不上了
		if photo != "" {
			a.discardUpload(c, photo)
		}
		switch {
		case errors.Is(err, accounts.ErrUsernameTaken):
			return a.formEr(c, map[string]string{"username": fmt.Sprintf("Username %s is already taken!", req.Username)}, &req)
		case errors.Is(err, accounts.ErrEmailTaken):
			return a.formEr(c, map[string]string{"email": fmt.Sprintf("User with e-mail %s is already registered!", req.Email)}, &req)
		case errors.Is(err, gorm.ErrRecordNotFound):
			return a.er(c, http.StatusNotFound)
		default:
			a.l.Error("failed to update profile", zap.Uint("id", user.ID), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	// 已经保存成功，入队失败只记录日志
	if photo != "" && accounts.NeedsResize(account.Profile) {
		if err := a.queue.Push(rctx, types.ResizeJob{
			Kind: types.ResizeJobAvatar,
			ID:   account.Profile.ID,
			Key:  account.Profile.Photo,
		}); err != nil {
			a.l.Error("failed to enqueue avatar resize", zap.Uint("profile", account.Profile.ID), zap.Error(err))
		}
	}

	return a.seeOther(c, "/profile/", account)
}
