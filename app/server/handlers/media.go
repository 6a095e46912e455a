package handlers

import (
	"errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"library-catalog/app/server/storage"
	"mime"
	"net/http"
	"path"
)

func (a *App) MediaGet(c echo.Context) error {
	rctx := c.Request().Context()
	key := c.Param("*")

	rc, err := a.store.Open(rctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidPath) {
			return a.er(c, http.StatusNotFound)
		} else {
			a.l.Error("failed to open media", zap.String("key", key), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}

	return c.Stream(http.StatusOK, contentType, rc)
}
