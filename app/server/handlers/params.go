package handlers

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"library-catalog/app/server/utils"
	"net/http"
)

// 路径参数不合法时按找不到处理

func (a *App) paramID(c echo.Context) (uint, error, int) {
	id, err := utils.ParseUint(c.Param("id"))
	if err != nil || id == 0 {
		return 0, errInvalidParam, http.StatusNotFound
	}
	return id, nil, http.StatusOK
}

func (a *App) paramUUID(c echo.Context) (uuid.UUID, error, int) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errInvalidParam, http.StatusNotFound
	}
	return id, nil, http.StatusOK
}

// seeOther 相当于表单提交成功后的跳转，同时返回结果
func (a *App) seeOther(c echo.Context, location string, body interface{}) error {
	c.Response().Header().Set(echo.HeaderLocation, location)
	return c.JSON(http.StatusSeeOther, body)
}
