package handlers

import (
	"errors"
	"github.com/labstack/echo/v4"
	"net/http"
	"strconv"
)

var (
	errInvalidPage  = errors.New("invalid page")
	errInvalidParam = errors.New("invalid path parameter")
)

type PageResponse[T any] struct {
	Page    int   `json:"page"`
	PageMax int64 `json:"page_max"`
	Limit   int   `json:"limit"`
	List    []T   `json:"list"`
}

// parsePagination 读取 ?page= ，从 1 开始，不填默认第一页
func (a *App) parsePagination(c echo.Context) (int, error, int) {
	pageStr := c.QueryParam("page")
	if pageStr == "" {
		return 1, nil, http.StatusOK
	}

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		return 0, errInvalidPage, http.StatusNotFound
	}

	return page, nil, http.StatusOK
}

func (a *App) calcMaxPage(count int64, limit int) int64 {
	pageMax := count / int64(limit)
	if (count % int64(limit)) != 0 {
		pageMax++
	}
	return pageMax
}

// checkPage 第一页总是存在，即使列表为空
func (a *App) checkPage(page int, pageMax int64) (error, int) {
	if page > 1 && int64(page) > pageMax {
		return errInvalidPage, http.StatusNotFound
	}
	return nil, http.StatusOK
}
