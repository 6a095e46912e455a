package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"io"
	"library-catalog/app/server/accounts"
	"library-catalog/app/server/handlers"
	"library-catalog/app/server/jwt"
	"library-catalog/app/server/models"
	"library-catalog/app/server/storage"
	"library-catalog/app/server/testutil"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"
)

type env struct {
	e     *echo.Echo
	db    *gorm.DB
	mr    *miniredis.Miniredis
	j     *jwt.JWT
	store storage.Storage
	root  string
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db := testutil.NewDB(t)
	rdb, mr := testutil.NewRedis(t)
	j, err := jwt.New("test-secret")
	require.NoError(t, err)
	root := t.TempDir()
	store, err := storage.NewLocal(root)
	require.NoError(t, err)

	e := echo.New()
	handlers.NewApp(zap.NewNop(), db, rdb, j, store).RegisterRoutes(e)

	return &env{e: e, db: db, mr: mr, j: j, store: store, root: root}
}

func (v *env) user(t *testing.T, username string, isAdmin bool) *models.User {
	t.Helper()
	user, err := accounts.Create(context.Background(), v.db, accounts.NewAccount{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret-" + username,
		IsAdmin:  isAdmin,
	})
	require.NoError(t, err)
	return user
}

func (v *env) token(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := v.j.SignToken(&jwt.User{
		ID:      user.ID,
		IsAdmin: user.IsAdmin,
		Expires: time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)
	return token
}

func (v *env) book(t *testing.T, title, description string) *models.Book {
	t.Helper()
	book := models.Book{Title: title, Description: description, ISBN: "9780000000000"}
	require.NoError(t, v.db.Create(&book).Error)
	return &book
}

type request struct {
	method      string
	path        string
	body        io.Reader
	contentType string
	token       string
	cookies     []*http.Cookie
}

func (v *env) do(r request) *httptest.ResponseRecorder {
	req := httptest.NewRequest(r.method, r.path, r.body)
	if r.contentType != "" {
		req.Header.Set(echo.HeaderContentType, r.contentType)
	}
	if r.token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+r.token)
	}
	for _, cookie := range r.cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	v.e.ServeHTTP(rec, req)
	return rec
}

func (v *env) get(path, token string) *httptest.ResponseRecorder {
	return v.do(request{method: http.MethodGet, path: path, token: token})
}

func (v *env) postForm(path, token string, values url.Values) *httptest.ResponseRecorder {
	return v.do(request{
		method:      http.MethodPost,
		path:        path,
		body:        strings.NewReader(values.Encode()),
		contentType: echo.MIMEApplicationForm,
		token:       token,
	})
}

func (v *env) sendJSON(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	return v.do(request{
		method:      method,
		path:        path,
		body:        bytes.NewReader(raw),
		contentType: echo.MIMEApplicationJSON,
		token:       token,
	})
}

func multipartBody(t *testing.T, values map[string]string, fileField, fileName string, content []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, val := range values {
		require.NoError(t, w.WriteField(k, val))
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
