package handlers

import (
	"errors"
	"fmt"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"library-catalog/app/server/circulation"
	"library-catalog/app/server/constants"
	"library-catalog/app/server/models"
	"net/http"
	"time"
)

const dateLayout = "2006-01-02"

// borrowForm 只接受书和归还日期，状态和借阅人由服务端决定
type borrowForm struct {
	Book    uint   `form:"book" json:"book" validate:"required"`
	DueBack string `form:"due_back" json:"due_back" validate:"required,datetime=2006-01-02"`
}

type instanceUpdateForm struct {
	Book       *uint   `form:"book" json:"book"`
	DueBack    *string `form:"due_back" json:"due_back" validate:"omitempty,datetime=2006-01-02"`
	BookStatus *string `form:"book_status" json:"book_status" validate:"omitempty,oneof=p t a r"`
}

type BorrowFormResponse struct {
	Books []BookChoice `json:"books"`
}

type InstanceEditResponse struct {
	Instance     InstanceInfo   `json:"instance"`
	NextStatuses []StatusChoice `json:"next_statuses"`
	Books        []BookChoice   `json:"books"`
}

const (
	msgInvalidChoice = "Select a valid choice. That choice is not one of the available choices."
	msgInvalidStatus = "Select a valid choice. This status change is not allowed."
)

func (a *App) bookChoices(c echo.Context) ([]BookChoice, error) {
	var choices []BookChoice
	if err := a.db.WithContext(c.Request().Context()).
		Model(&models.Book{}).
		Select("id", "title").
		Order("title ASC").Order("id ASC").
		Scan(&choices).Error; err != nil {
		return nil, err
	}
	if choices == nil {
		choices = []BookChoice{}
	}
	return choices, nil
}

func (a *App) MyBookList(c echo.Context) error {
	user := a.currentUser(c)
	if user == nil {
		return a.er(c, http.StatusUnauthorized)
	}

	page, err, statusCode := a.parsePagination(c)
	if err != nil {
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()
	limit := constants.PageSizeMyBooks

	instances, count, err := circulation.ListTaken(rctx, a.db, user.ID, (page-1)*limit, limit)
	if err != nil {
		a.l.Error("failed to list borrowed books", zap.Uint("reader", user.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	pageMax := a.calcMaxPage(count, limit)
	if err, statusCode := a.checkPage(page, pageMax); err != nil {
		return a.er(c, statusCode)
	}

	return c.JSON(http.StatusOK, &PageResponse[InstanceInfo]{
		Page:    page,
		PageMax: pageMax,
		Limit:   limit,
		List:    a.instanceInfos(instances),
	})
}

// MyBookDetail 任何登录用户都可以查看，修改和删除时才检查借阅人
func (a *App) MyBookDetail(c echo.Context) error {
	if a.currentUser(c) == nil {
		return a.er(c, http.StatusUnauthorized)
	}

	id, err, statusCode := a.paramUUID(c)
	if err != nil {
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	var instance models.BookInstance
	if err := a.db.WithContext(rctx).Preload("Book").First(&instance, "instance_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		} else {
			a.l.Error("failed to get instance", zap.Stringer("id", id), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	return c.JSON(http.StatusOK, a.instanceInfo(&instance))
}

func (a *App) MyBookCreateForm(c echo.Context) error {
	if a.currentUser(c) == nil {
		return a.er(c, http.StatusUnauthorized)
	}

	books, err := a.bookChoices(c)
	if err != nil {
		a.l.Error("failed to get book choices", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, &BorrowFormResponse{Books: books})
}

func (a *App) MyBookCreate(c echo.Context) error {
	user := a.currentUser(c)
	if user == nil {
		return a.er(c, http.StatusUnauthorized)
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req borrowForm
	if ok, err := a.bindForm(c, &req); !ok {
		return err
	}

	dueBack, err := time.Parse(dateLayout, req.DueBack)
	if err != nil {
		return a.formEr(c, map[string]string{"due_back": "Enter a valid date."}, &req)
	}

	instance, err := circulation.Borrow(rctx, a.db, user.ID, req.Book, dueBack)
	if err != nil {
		if errors.Is(err, circulation.ErrBookNotFound) {
			return a.formEr(c, map[string]string{"book": msgInvalidChoice}, &req)
		} else {
			a.l.Error("failed to borrow book", zap.Uint("reader", user.ID), zap.Uint("book", req.Book), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	return a.seeOther(c, "/my_books/", a.instanceInfo(instance))
}

// ownInstance 只有当前借阅人能拿到副本，其余情况一律 403 ，不区分是否存在
func (a *App) ownInstance(c echo.Context, readerID uint) (*models.BookInstance, error, int) {
	id, err, statusCode := a.paramUUID(c)
	if err != nil {
		return nil, err, statusCode
	}

	var instance models.BookInstance
	if err := a.db.WithContext(c.Request().Context()).
		First(&instance, "instance_id = ? AND reader_id = ?", id, readerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, circulation.ErrNotOwner, http.StatusForbidden
		} else {
			return nil, fmt.Errorf("failed to get instance: %w", err), http.StatusInternalServerError
		}
	}

	return &instance, nil, http.StatusOK
}

func (a *App) MyBookUpdateForm(c echo.Context) error {
	user := a.currentUser(c)
	if user == nil {
		return a.er(c, http.StatusUnauthorized)
	}

	instance, err, statusCode := a.ownInstance(c, user.ID)
	if err != nil {
		if statusCode == http.StatusInternalServerError {
			a.l.Error("failed to get own instance", zap.Uint("reader", user.ID), zap.Error(err))
		}
		return a.er(c, statusCode)
	}

	books, err := a.bookChoices(c)
	if err != nil {
		a.l.Error("failed to get book choices", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, &InstanceEditResponse{
		Instance:     a.instanceInfo(instance),
		NextStatuses: statusChoices(circulation.NextStatuses(instance.BookStatus)),
		Books:        books,
	})
}

func (a *App) MyBookUpdate(c echo.Context) error {
	user := a.currentUser(c)
	if user == nil {
		return a.er(c, http.StatusUnauthorized)
	}

	// 先确认权限，再看提交的内容
	instance, err, statusCode := a.ownInstance(c, user.ID)
	if err != nil {
		if statusCode == http.StatusInternalServerError {
			a.l.Error("failed to get own instance", zap.Uint("reader", user.ID), zap.Error(err))
		}
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req instanceUpdateForm
	if ok, err := a.bindForm(c, &req); !ok {
		return err
	}

	var change circulation.Change
	change.BookID = req.Book
	if req.DueBack != nil {
		dueBack, err := time.Parse(dateLayout, *req.DueBack)
		if err != nil {
			return a.formEr(c, map[string]string{"due_back": "Enter a valid date."}, &req)
		}
		change.DueBack = &dueBack
	}
	if req.BookStatus != nil {
		status := models.LoanStatus(*req.BookStatus)
		change.Status = &status
	}

	updated, err := circulation.Update(rctx, a.db, user.ID, instance.InstanceID, change)
	if err != nil {
		switch {
		case errors.Is(err, circulation.ErrNotOwner):
			return a.er(c, http.StatusForbidden)
		case errors.Is(err, circulation.ErrBookNotFound):
			return a.formEr(c, map[string]string{"book": msgInvalidChoice}, &req)
		case errors.Is(err, circulation.ErrTransitionDenied):
			return a.formEr(c, map[string]string{"book_status": msgInvalidStatus}, &req)
		default:
			a.l.Error("failed to update instance", zap.Stringer("id", instance.InstanceID), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	return a.seeOther(c, "/my_books/", a.instanceInfo(updated))
}

func (a *App) MyBookDelete(c echo.Context) error {
	user := a.currentUser(c)
	if user == nil {
		return a.er(c, http.StatusUnauthorized)
	}

	id, err, statusCode := a.paramUUID(c)
	if err != nil {
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	if err := circulation.Delete(rctx, a.db, user.ID, id); err != nil {
		if errors.Is(err, circulation.ErrNotOwner) {
			return a.er(c, http.StatusForbidden)
		} else {
			a.l.Error("failed to delete instance", zap.Stringer("id", id), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	return a.seeOther(c, "/my_books/", echo.Map{"instance_id": id})
}
