package handlers_test

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"library-catalog/app/server/handlers"
	"library-catalog/app/server/models"
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func TestHealthCheck(t *testing.T) {
	v := newEnv(t)
	assert.Equal(t, http.StatusOK, v.get("/health", "").Code)
}

func TestIndex_CountsAndVisits(t *testing.T) {
	v := newEnv(t)
	dune := v.book(t, "Dune", "Desert planet")
	require.NoError(t, v.db.Create(&models.Author{FirstName: "Frank", LastName: "Herbert"}).Error)
	require.NoError(t, v.db.Create(&models.BookInstance{BookID: &dune.ID, BookStatus: models.StatusAvailable}).Error)
	require.NoError(t, v.db.Create(&models.BookInstance{BookID: &dune.ID, BookStatus: models.StatusReserved}).Error)

	rec := v.get("/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	dash := decode[handlers.Dashboard](t, rec)
	assert.EqualValues(t, 1, dash.Books)
	assert.EqualValues(t, 2, dash.BookInstances)
	assert.EqualValues(t, 1, dash.Authors)
	assert.EqualValues(t, 1, dash.Available)
	assert.EqualValues(t, 1, dash.NumVisits)

	// 同一个会话再次访问
	var session *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "sessionid" {
			session = cookie
		}
	}
	require.NotNil(t, session)

	rec = v.do(request{method: http.MethodGet, path: "/", cookies: []*http.Cookie{session}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, decode[handlers.Dashboard](t, rec).NumVisits)
	assert.True(t, v.mr.Exists("library:session:"+session.Value))

	// 新会话重新计数
	assert.EqualValues(t, 1, decode[handlers.Dashboard](t, v.get("/", "")).NumVisits)
}

func TestAuthorList_Pagination(t *testing.T) {
	v := newEnv(t)
	for _, a := range []models.Author{
		{FirstName: "Jane", LastName: "Austen"},
		{FirstName: "Frank", LastName: "Herbert"},
		{FirstName: "Ursula", LastName: "Le Guin"},
	} {
		require.NoError(t, v.db.Create(&a).Error)
	}

	rec := v.get("/authors/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[handlers.PageResponse[models.Author]](t, rec)
	assert.Equal(t, 1, page.Page)
	assert.EqualValues(t, 2, page.PageMax)
	assert.Equal(t, 2, page.Limit)
	require.Len(t, page.List, 2)
	assert.Equal(t, "Austen", page.List[0].LastName)
	assert.Equal(t, "Herbert", page.List[1].LastName)

	rec = v.get("/authors/?page=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	page = decode[handlers.PageResponse[models.Author]](t, rec)
	require.Len(t, page.List, 1)
	assert.Equal(t, "Le Guin", page.List[0].LastName)

	assert.Equal(t, http.StatusNotFound, v.get("/authors/?page=3", "").Code)
	assert.Equal(t, http.StatusNotFound, v.get("/authors/?page=abc", "").Code)
	assert.Equal(t, http.StatusNotFound, v.get("/authors/?page=0", "").Code)
}

func TestBookList_EmptyFirstPage(t *testing.T) {
	v := newEnv(t)

	rec := v.get("/books/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[handlers.PageResponse[models.Book]](t, rec)
	assert.EqualValues(t, 0, page.PageMax)
	assert.Empty(t, page.List)

	assert.Equal(t, http.StatusNotFound, v.get("/books/?page=2", "").Code)
}

func TestAuthorDetail(t *testing.T) {
	v := newEnv(t)
	author := models.Author{FirstName: "Frank", LastName: "Herbert"}
	require.NoError(t, v.db.Create(&author).Error)
	dune := v.book(t, "Dune", "Desert planet")
	require.NoError(t, v.db.Model(dune).Update("author_id", author.ID).Error)

	rec := v.get("/authors/"+itoa(author.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[models.Author](t, rec)
	require.Len(t, got.Books, 1)
	assert.Equal(t, "Dune", got.Books[0].Title)

	assert.Equal(t, http.StatusNotFound, v.get("/authors/999", "").Code)
	assert.Equal(t, http.StatusNotFound, v.get("/authors/abc", "").Code)
}

func TestBookDetail_ReviewsNewestFirst(t *testing.T) {
	v := newEnv(t)
	alice := v.user(t, "alice", false)
	dune := v.book(t, "Dune", "Desert planet")
	token := v.token(t, alice)

	for _, content := range []string{"first", "second"} {
		rec := v.postForm("/books/"+itoa(dune.ID), token, url.Values{"content": {content}})
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/books/"+itoa(dune.ID), rec.Header().Get("Location"))
	}

	rec := v.get("/books/"+itoa(dune.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decode[handlers.BookDetail](t, rec)
	assert.Equal(t, "Dune", detail.Book.Title)
	require.Len(t, detail.Reviews, 2)
	assert.Equal(t, "second", detail.Reviews[0].Content)
	assert.Equal(t, "alice", detail.Reviews[0].Reviewer)

	assert.Equal(t, http.StatusNotFound, v.get("/books/999", "").Code)
}

func TestReview_UnauthenticatedRejectedBeforePersistence(t *testing.T) {
	v := newEnv(t)
	dune := v.book(t, "Dune", "Desert planet")

	rec := v.postForm("/books/"+itoa(dune.ID), "", url.Values{"content": {"great"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// 无效的令牌同样按匿名处理
	rec = v.postForm("/books/"+itoa(dune.ID), "not-a-token", url.Values{"content": {"great"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var count int64
	require.NoError(t, v.db.Model(&models.BookReview{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestReview_IdentityForcedServerSide(t *testing.T) {
	v := newEnv(t)
	alice := v.user(t, "alice", false)
	bob := v.user(t, "bob", false)
	dune := v.book(t, "Dune", "Desert planet")
	emma := v.book(t, "Emma", "Matchmaking")

	rec := v.postForm("/books/"+itoa(dune.ID), v.token(t, alice), url.Values{
		"content":  {"spice"},
		"book":     {itoa(emma.ID)},
		"reviewer": {itoa(bob.ID)},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	var review models.BookReview
	require.NoError(t, v.db.First(&review).Error)
	assert.Equal(t, dune.ID, *review.BookID)
	assert.Equal(t, alice.ID, *review.ReviewerID)
	assert.Equal(t, "spice", review.Content)
}

func TestReview_InvalidContentRedisplaysDetail(t *testing.T) {
	v := newEnv(t)
	alice := v.user(t, "alice", false)
	dune := v.book(t, "Dune", "Desert planet")

	rec := v.postForm("/books/"+itoa(dune.ID), v.token(t, alice), url.Values{"content": {""}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	detail := decode[handlers.BookDetail](t, rec)
	assert.Equal(t, "Dune", detail.Book.Title)
	assert.Contains(t, detail.FormErrors, "content")

	var count int64
	require.NoError(t, v.db.Model(&models.BookReview{}).Count(&count).Error)
	assert.Zero(t, count)

	// 评论不存在的书
	rec = v.postForm("/books/999", v.token(t, alice), url.Values{"content": {"hi"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearch(t *testing.T) {
	v := newEnv(t)
	v.book(t, "Dune", "Desert planet")
	v.book(t, "Emma", "A novel about matchmaking")
	v.book(t, "100% Pure", "Percent sign")

	titles := func(query string) []string {
		rec := v.get("/search/?query="+url.QueryEscape(query), "")
		require.Equal(t, http.StatusOK, rec.Code)
		var res []string
		for _, b := range decode[handlers.SearchResult](t, rec).List {
			res = append(res, b.Title)
		}
		return res
	}

	assert.Equal(t, []string{"Dune"}, titles("dUNE"))
	assert.Equal(t, []string{"Emma"}, titles("MATCH"))
	assert.Equal(t, []string{"100% Pure"}, titles("%"))
	assert.Len(t, titles(""), 3)
	assert.Empty(t, titles("nothing like this"))
}

func TestMedia(t *testing.T) {
	v := newEnv(t)
	require.NoError(t, v.store.Save(context.Background(), "covers/a.png", strings.NewReader("png-bytes")))

	rec := v.get("/media/covers/a.png", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png-bytes", rec.Body.String())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	assert.Equal(t, http.StatusNotFound, v.get("/media/covers/missing.png", "").Code)
}
