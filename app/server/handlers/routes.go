package handlers

import (
	"github.com/labstack/echo/v4"
	"library-catalog/app/server/middlewares"
)

// RegisterRoutes 绑定全部路由，会话与令牌解析对所有请求生效
func (a *App) RegisterRoutes(e *echo.Echo) {
	e.Validator = a

	e.Use(middlewares.Session(a.rdb, a.l))
	e.Use(middlewares.Auth(a.jwt))

	e.GET("/health", a.HealthCheck)
	e.GET("/media/*", a.MediaGet)

	// 目录
	e.GET("/", a.Index)
	e.GET("/authors/", a.AuthorList)
	e.GET("/authors/:id", a.AuthorDetail)
	e.GET("/books/", a.BookList)
	e.GET("/books/:id", a.BookDetail)
	e.POST("/books/:id", a.BookReviewCreate, middlewares.RequireLogin)
	e.GET("/search/", a.Search)

	// 账号
	e.POST("/account/login/", a.AuthLogin)
	e.POST("/account/logout/", a.AuthLogout)
	e.GET("/register/", a.RegisterForm)
	e.POST("/register/", a.Register)
	e.GET("/profile/", a.ProfileGet, middlewares.RequireLogin)
	e.POST("/profile/", a.ProfileUpdate, middlewares.RequireLogin)

	// 借阅
	my := e.Group("/my_books", middlewares.RequireLogin)
	my.GET("/", a.MyBookList)
	my.GET("/create2/", a.MyBookCreateForm)
	my.POST("/create2/", a.MyBookCreate)
	my.GET("/update2/:id", a.MyBookUpdateForm)
	my.POST("/update2/:id", a.MyBookUpdate)
	my.POST("/delete2/:id", a.MyBookDelete)
	my.GET("/:id", a.MyBookDetail)

	// 管理接口
	admin := e.Group("/admin/api", middlewares.RequireAdmin)
	admin.GET("/genres", a.GenreList)
	admin.POST("/genres", a.GenreCreate)
	admin.POST("/authors", a.AuthorCreate)
	admin.PUT("/authors/:id", a.AuthorUpdate)
	admin.DELETE("/authors/:id", a.AuthorDelete)
	admin.POST("/books", a.BookCreate)
	admin.PUT("/books/:id", a.BookUpdate)
	admin.DELETE("/books/:id", a.BookDelete)
	admin.POST("/books/:id/cover", a.BookCoverUpload)
	admin.POST("/users", a.UserCreate)
	admin.POST("/instances", a.InstanceCreate)
	admin.PUT("/instances/:id/status", a.InstanceStatusUpdate)
}
