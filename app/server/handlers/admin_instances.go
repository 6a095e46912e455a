package handlers

import (
	"errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"library-catalog/app/server/catalog"
	"library-catalog/app/server/circulation"
	"library-catalog/app/server/models"
	"net/http"
	"time"
)

type instanceCreateForm struct {
	Book       uint    `form:"book" json:"book" validate:"required"`
	DueBack    *string `form:"due_back" json:"due_back" validate:"omitempty,datetime=2006-01-02"`
	BookStatus string  `form:"book_status" json:"book_status" validate:"omitempty,oneof=p t a r"`
	Reader     *uint   `form:"reader" json:"reader"`
}

type instanceStatusForm struct {
	BookStatus string `form:"book_status" json:"book_status" validate:"required,oneof=p t a r"`
	Reader     *uint  `form:"reader" json:"reader"`
}

const msgReaderRequired = "A taken copy must have a reader."

func (a *App) readerExists(c echo.Context, id uint) (bool, error) {
	var count int64
	if err := a.db.WithContext(c.Request().Context()).
		Model(&models.User{}).Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// InstanceCreate 管理员可以直接创建任意状态的副本
func (a *App) InstanceCreate(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req instanceCreateForm
	if ok, err := a.bindForm(c, &req); !ok {
		return err
	}

	fields := map[string]string{}
	instance := models.BookInstance{
		BookID:     &req.Book,
		BookStatus: models.LoanStatus(req.BookStatus),
	}
	if instance.BookStatus == "" {
		instance.BookStatus = models.StatusAvailable
	}

	if err, statusCode := catalog.ValidateIDs[models.Book](a.db.WithContext(rctx), []uint{req.Book}); err != nil {
		if statusCode != http.StatusBadRequest {
			a.l.Error("failed to validate book", zap.Error(err))
			return a.er(c, statusCode)
		}
		fields["book"] = msgInvalidChoice
	}

	if req.DueBack != nil {
		dueBack, err := time.Parse(dateLayout, *req.DueBack)
		if err != nil {
			fields["due_back"] = "Enter a valid date."
		} else {
			instance.DueBack = &dueBack
		}
	}

	// 只有 Taken 状态才记录借阅人
	if instance.BookStatus == models.StatusTaken {
		if req.Reader == nil {
			fields["reader"] = msgReaderRequired
		} else if ok, err := a.readerExists(c, *req.Reader); err != nil {
			a.l.Error("failed to check reader", zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		} else if !ok {
			fields["reader"] = msgInvalidChoice
		} else {
			instance.ReaderID = req.Reader
		}
	}

	if len(fields) > 0 {
		return a.formEr(c, fields, &req)
	}

	if err := a.db.WithContext(rctx).Omit("Book", "Reader").Create(&instance).Error; err != nil {
		a.l.Error("failed to create instance", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusCreated, a.instanceInfo(&instance))
}

func (a *App) InstanceStatusUpdate(c echo.Context) error {
	id, err, statusCode := a.paramUUID(c)
	if err != nil {
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req instanceStatusForm
	if ok, err := a.bindForm(c, &req); !ok {
		return err
	}

	if req.Reader != nil {
		if ok, err := a.readerExists(c, *req.Reader); err != nil {
			a.l.Error("failed to check reader", zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		} else if !ok {
			return a.formEr(c, map[string]string{"reader": msgInvalidChoice}, &req)
		}
	}

	instance, err := circulation.SetStatus(rctx, a.db, id, models.LoanStatus(req.BookStatus), req.Reader)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return a.er(c, http.StatusNotFound)
		case errors.Is(err, circulation.ErrTransitionDenied):
			return a.formEr(c, map[string]string{"book_status": msgInvalidStatus}, &req)
		case errors.Is(err, circulation.ErrReaderRequired):
			return a.formEr(c, map[string]string{"reader": msgReaderRequired}, &req)
		default:
			a.l.Error("failed to set instance status", zap.Stringer("id", id), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	return c.JSON(http.StatusOK, a.instanceInfo(instance))
}
