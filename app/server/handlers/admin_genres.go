package handlers

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"library-catalog/app/server/models"
	"net/http"
)

type genreForm struct {
	Name string `form:"name" json:"name" validate:"required,max=100"`
}

func (a *App) GenreCreate(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req genreForm
	if ok, err := a.bindForm(c, &req); !ok {
		return err
	}

	genre := models.Genre{Name: req.Name}
	if err := a.db.WithContext(rctx).Create(&genre).Error; err != nil {
		a.l.Error("failed to create genre", zap.Any("genre", genre), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusCreated, &genre)
}

func (a *App) GenreList(c echo.Context) error {
	rctx := c.Request().Context()

	var genres []models.Genre
	if err := a.db.WithContext(rctx).Order("name ASC").Find(&genres).Error; err != nil {
		a.l.Error("failed to get genre list", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, genres)
}
