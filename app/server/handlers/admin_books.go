package handlers

import (
	"errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"library-catalog/app/server/catalog"
	"library-catalog/app/server/constants"
	"library-catalog/app/server/models"
	"library-catalog/app/server/types"
	"library-catalog/app/server/utils"
	"net/http"
)

type bookForm struct {
	Title       string `form:"title" json:"title" validate:"required,max=200"`
	Description string `form:"description" json:"description" validate:"required,max=1000"`
	ISBN        string `form:"isbn" json:"isbn" validate:"required,max=13"`
	Author      *uint  `form:"author" json:"author"`
	Genres      []uint `form:"genres" json:"genres" validate:"min=1"`
}

// validateBookRefs 检查作者与类型都存在，返回字段错误
func (a *App) validateBookRefs(c echo.Context, req *bookForm) (map[string]string, error) {
	db := a.db.WithContext(c.Request().Context())
	fields := map[string]string{}

	if req.Author != nil {
		if err, statusCode := catalog.ValidateIDs[models.Author](db, []uint{*req.Author}); err != nil {
			if statusCode != http.StatusBadRequest {
				return nil, err
			}
			fields["author"] = msgInvalidChoice
		}
	}
	if err, statusCode := catalog.ValidateIDs[models.Genre](db, req.Genres); err != nil {
		if statusCode != http.StatusBadRequest {
			return nil, err
		}
		fields["genres"] = "Select a valid choice. One of the genres does not exist."
	}

	if len(fields) == 0 {
		return nil, nil
	}
	return fields, nil
}

func (a *App) bookGenres(req *bookForm) []models.Genre {
	genres := []models.Genre{}
	for _, id := range utils.UniqueUints(req.Genres) {
		genres = append(genres, models.Genre{ID: id})
	}
	return genres
}

func (a *App) BookCreate(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req bookForm
	if ok, err := a.bindForm(c, &req); !ok {
		return err
	}

	if fields, err := a.validateBookRefs(c, &req); err != nil {
		a.l.Error("failed to validate book references", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	} else if fields != nil {
		return a.formEr(c, fields, &req)
	}

	book := models.Book{
		Title:       req.Title,
		Description: req.Description,
		ISBN:        req.ISBN,
		AuthorID:    req.Author,
		Genres:      a.bookGenres(&req),
	}

	// 只写入关联关系，不改动类型本身
	if err := a.db.WithContext(rctx).Omit("Genres.*").Create(&book).Error; err != nil {
		a.l.Error("failed to create book", zap.Any("book", book), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusCreated, &book)
}

func (a *App) BookUpdate(c echo.Context) error {
	id, err, statusCode := a.paramID(c)
	if err != nil {
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req bookForm
	if ok, err := a.bindForm(c, &req); !ok {
		return err
	}

	if fields, err := a.validateBookRefs(c, &req); err != nil {
		a.l.Error("failed to validate book references", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	} else if fields != nil {
		return a.formEr(c, fields, &req)
	}

	var book models.Book
	if err := a.db.WithContext(rctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&book, "id = ?", id).Error; err != nil {
			return err
		}

		book.Title = req.Title
		book.Description = req.Description
		book.ISBN = req.ISBN
		book.AuthorID = req.Author

		if err := tx.Model(&book).
			Select("title", "description", "isbn", "author_id").
			Updates(&book).Error; err != nil {
			return err
		}

		// 替换类型
		genres := a.bookGenres(&req)
		if err := tx.Model(&book).Omit("Genres.*").Association("Genres").Replace(genres); err != nil {
			return err
		}
		book.Genres = genres

		return nil
	}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		} else {
			a.l.Error("failed to update book", zap.Uint("id", id), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	return c.JSON(http.StatusOK, &book)
}

func (a *App) BookDelete(c echo.Context) error {
	id, err, statusCode := a.paramID(c)
	if err != nil {
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	if err := catalog.DeleteBook(rctx, a.db, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		} else {
			a.l.Error("failed to delete book", zap.Uint("id", id), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	return c.NoContent(http.StatusNoContent)
}

// BookCoverUpload 保存封面后排队缩放
func (a *App) BookCoverUpload(c echo.Context) error {
	id, err, statusCode := a.paramID(c)
	if err != nil {
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	var book models.Book
	if err := a.db.WithContext(rctx).First(&book, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		} else {
			a.l.Error("failed to get book", zap.Uint("id", id), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	cover, fields, err := a.saveUpload(c, "cover", constants.CoverPathPrefix)
	if err != nil {
		a.l.Error("failed to save cover", zap.Uint("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	if fields != nil {
		return a.formEr(c, fields, nil)
	}
	if cover == "" {
		return a.formEr(c, map[string]string{"cover": "This field is required."}, nil)
	}

	if err := a.db.WithContext(rctx).Model(&book).Update("cover", cover).Error; err != nil {
		a.l.Error("failed to update cover", zap.Uint("id", id), zap.Error(err))
		a.discardUpload(c, cover)
		return a.er(c, http.StatusInternalServerError)
	}
	book.Cover = utils.P(cover)

	if err := a.queue.Push(rctx, types.ResizeJob{
		Kind: types.ResizeJobCover,
		ID:   book.ID,
		Key:  cover,
	}); err != nil {
		a.l.Error("failed to enqueue cover resize", zap.Uint("id", id), zap.Error(err))
	}

	return c.JSON(http.StatusOK, &book)
}
