package handlers

import (
	"errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"library-catalog/app/server/catalog"
	"library-catalog/app/server/models"
	"net/http"
)

type authorForm struct {
	FirstName   string `form:"first_name" json:"first_name" validate:"required,max=100"`
	LastName    string `form:"last_name" json:"last_name" validate:"required,max=100"`
	Description string `form:"description" json:"description"`
}

func (a *App) authorMapFields(req *authorForm, author *models.Author) {
	author.FirstName = req.FirstName
	author.LastName = req.LastName
	author.Description = req.Description
}

func (a *App) AuthorCreate(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req authorForm
	if ok, err := a.bindForm(c, &req); !ok {
		return err
	}

	var author models.Author
	a.authorMapFields(&req, &author)

	if err := a.db.WithContext(rctx).Create(&author).Error; err != nil {
		a.l.Error("failed to create author", zap.Any("author", author), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusCreated, &author)
}

func (a *App) AuthorUpdate(c echo.Context) error {
	id, err, statusCode := a.paramID(c)
	if err != nil {
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req authorForm
	if ok, err := a.bindForm(c, &req); !ok {
		return err
	}

	// 从数据库中获得指定的作者
	var author models.Author
	if err := a.db.WithContext(rctx).First(&author, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		} else {
			a.l.Error("failed to get author", zap.Uint("id", id), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	a.authorMapFields(&req, &author)

	// 描述可以清空，所以用 Select 指定字段
	if err := a.db.WithContext(rctx).Model(&author).
		Select("first_name", "last_name", "description").
		Updates(&author).Error; err != nil {
		a.l.Error("failed to update author", zap.Any("author", author), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, &author)
}

func (a *App) AuthorDelete(c echo.Context) error {
	id, err, statusCode := a.paramID(c)
	if err != nil {
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	if err := catalog.DeleteAuthor(rctx, a.db, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		} else {
			a.l.Error("failed to delete author", zap.Uint("id", id), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	return c.NoContent(http.StatusNoContent)
}
