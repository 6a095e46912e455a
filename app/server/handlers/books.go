package handlers

import (
	"errors"
	"fmt"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"library-catalog/app/server/constants"
	"library-catalog/app/server/models"
	"net/http"
)

type reviewForm struct {
	Content string `form:"content" json:"content" validate:"required,max=2000"`
}

func (a *App) BookList(c echo.Context) error {
	page, err, statusCode := a.parsePagination(c)
	if err != nil {
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()
	limit := constants.PageSizeBooks

	var (
		books      []models.Book
		booksCount int64
	)

	if err := a.db.WithContext(rctx).Model(&models.Book{}).Count(&booksCount).Error; err != nil {
		a.l.Error("failed to count books", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	pageMax := a.calcMaxPage(booksCount, limit)
	if err, statusCode := a.checkPage(page, pageMax); err != nil {
		return a.er(c, statusCode)
	}

	if err := a.db.WithContext(rctx).
		Preload("Author").
		Order("id ASC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&books).Error; err != nil {
		a.l.Error("failed to get book list", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, &PageResponse[models.Book]{
		Page:    page,
		PageMax: pageMax,
		Limit:   limit,
		List:    books,
	})
}

// loadBookDetail 书的详情：作者、类型、副本、评论（新的在前）
func (a *App) loadBookDetail(c echo.Context, id uint) (*BookDetail, error, int) {
	rctx := c.Request().Context()

	var book models.Book
	if err := a.db.WithContext(rctx).
		Preload("Author").
		Preload("Genres", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		}).
		First(&book, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err, http.StatusNotFound
		} else {
			return nil, fmt.Errorf("failed to get book: %w", err), http.StatusInternalServerError
		}
	}

	var instances []models.BookInstance
	if err := a.db.WithContext(rctx).
		Where("book_id = ?", id).
		Order(models.InstanceOrder).Order("instance_id ASC").
		Find(&instances).Error; err != nil {
		return nil, fmt.Errorf("failed to get instances: %w", err), http.StatusInternalServerError
	}

	var reviews []models.BookReview
	if err := a.db.WithContext(rctx).
		Preload("Reviewer").
		Where("book_id = ?", id).
		Order(models.ReviewOrder).
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err), http.StatusInternalServerError
	}

	resReviews := []ReviewInfo{}
	for _, review := range reviews {
		info := ReviewInfo{
			ID:          review.ID,
			Content:     review.Content,
			DateCreated: review.DateCreated,
		}
		if review.Reviewer != nil {
			info.Reviewer = review.Reviewer.Username
		}
		resReviews = append(resReviews, info)
	}

	return &BookDetail{
		Book:      &book,
		Instances: a.instanceInfos(instances),
		Reviews:   resReviews,
	}, nil, http.StatusOK
}

func (a *App) BookDetail(c echo.Context) error {
	id, err, statusCode := a.paramID(c)
	if err != nil {
		return a.er(c, statusCode)
	}

	detail, err, statusCode := a.loadBookDetail(c, id)
	if err != nil {
		if statusCode == http.StatusInternalServerError {
			a.l.Error("failed to load book detail", zap.Uint("id", id), zap.Error(err))
		}
		return a.er(c, statusCode)
	}

	return c.JSON(http.StatusOK, detail)
}

// BookReviewCreate 评论的书和评论人都由服务端决定，客户端只能提交内容
func (a *App) BookReviewCreate(c echo.Context) error {
	user := a.currentUser(c)
	if user == nil {
		return a.er(c, http.StatusUnauthorized)
	}

	id, err, statusCode := a.paramID(c)
	if err != nil {
		return a.er(c, statusCode)
	}

	detail, err, statusCode := a.loadBookDetail(c, id)
	if err != nil {
		if statusCode == http.StatusInternalServerError {
			a.l.Error("failed to load book detail", zap.Uint("id", id), zap.Error(err))
		}
		return a.er(c, statusCode)
	}

	// 绑定请求体
	var req reviewForm
	if err := c.Bind(&req); err != nil {
		return a.er(c, http.StatusBadRequest)
	}
	if err := a.Validate(&req); err != nil {
		// 重新展示详情页和表单错误
		detail.FormErrors = fieldErrors(err)
		detail.Input = &req
		return c.JSON(http.StatusBadRequest, detail)
	}

	rctx := c.Request().Context()

	review := models.BookReview{
		BookID:     &id,
		ReviewerID: &user.ID,
		Content:    req.Content,
	}
	if err := a.db.WithContext(rctx).Omit("Book", "Reviewer").Create(&review).Error; err != nil {
		a.l.Error("failed to create review", zap.Uint("book", id), zap.Uint("reviewer", user.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return a.seeOther(c, fmt.Sprintf("/books/%d", id), &review)
}
