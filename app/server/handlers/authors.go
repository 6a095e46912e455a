package handlers

import (
	"errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"library-catalog/app/server/constants"
	"library-catalog/app/server/models"
	"net/http"
)

func (a *App) AuthorList(c echo.Context) error {
	page, err, statusCode := a.parsePagination(c)
	if err != nil {
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()
	limit := constants.PageSizeAuthors

	var (
		authors      []models.Author
		authorsCount int64
	)

	if err := a.db.WithContext(rctx).Model(&models.Author{}).Count(&authorsCount).Error; err != nil {
		a.l.Error("failed to count authors", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	pageMax := a.calcMaxPage(authorsCount, limit)
	if err, statusCode := a.checkPage(page, pageMax); err != nil {
		return a.er(c, statusCode)
	}

	if err := a.db.WithContext(rctx).
		Order(models.AuthorOrder).
		Limit(limit).Offset((page - 1) * limit).
		Find(&authors).Error; err != nil {
		a.l.Error("failed to get author list", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, &PageResponse[models.Author]{
		Page:    page,
		PageMax: pageMax,
		Limit:   limit,
		List:    authors,
	})
}

func (a *App) AuthorDetail(c echo.Context) error {
	id, err, statusCode := a.paramID(c)
	if err != nil {
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	// 连同作品一起查询
	var author models.Author
	if err := a.db.WithContext(rctx).
		Preload("Books", func(db *gorm.DB) *gorm.DB {
			return db.Order("title ASC")
		}).
		First(&author, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		} else {
			a.l.Error("failed to get author", zap.Uint("id", id), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	return c.JSON(http.StatusOK, &author)
}
