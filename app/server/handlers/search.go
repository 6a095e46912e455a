package handlers

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"library-catalog/app/server/catalog"
	"library-catalog/app/server/models"
	"net/http"
)

type SearchResult struct {
	Query string        `json:"query"`
	List  []models.Book `json:"list"`
}

func (a *App) Search(c echo.Context) error {
	rctx := c.Request().Context()
	query := c.QueryParam("query")

	books, err := catalog.Search(rctx, a.db, query)
	if err != nil {
		a.l.Error("failed to search books", zap.String("query", query), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	if books == nil {
		books = []models.Book{}
	}

	return c.JSON(http.StatusOK, &SearchResult{
		Query: query,
		List:  books,
	})
}
