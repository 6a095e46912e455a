package handlers

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
)

type ErrorMessage struct {
	Message string `json:"message"`
}

type FormErrors struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
	Input   interface{}       `json:"input"`
}

func (a *App) er(c echo.Context, statusCode int) error {
	return c.JSON(statusCode, &ErrorMessage{
		Message: http.StatusText(statusCode),
	})
}

// formEr 表单校验失败，原样返回输入方便重新填写
func (a *App) formEr(c echo.Context, fields map[string]string, input interface{}) error {
	return c.JSON(http.StatusBadRequest, &FormErrors{
		Message: http.StatusText(http.StatusBadRequest),
		Fields:  fields,
		Input:   input,
	})
}

// redactor 返回可以回显给客户端的输入，用于去掉密码
type redactor interface {
	redact() interface{}
}

// bindForm 绑定并校验请求体。返回 false 时响应已经写好
func (a *App) bindForm(c echo.Context, req interface{}) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, a.er(c, http.StatusBadRequest)
	}

	if err := a.Validate(req); err != nil {
		fields := fieldErrors(err)
		if fields == nil {
			a.l.Error("failed to validate request", zap.Error(err))
			return false, a.er(c, http.StatusBadRequest)
		}
		return false, a.formEr(c, fields, echoInput(req))
	}

	return true, nil
}

func echoInput(req interface{}) interface{} {
	if r, ok := req.(redactor); ok {
		return r.redact()
	}
	return req
}
