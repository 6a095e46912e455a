package handlers_test

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"library-catalog/app/server/handlers"
	"library-catalog/app/server/models"
	"net/http"
	"net/url"
	"testing"
	"time"
)

func borrow(t *testing.T, v *env, token string, book *models.Book, dueBack string) handlers.InstanceInfo {
	t.Helper()
	rec := v.postForm("/my_books/create2/", token, url.Values{
		"book":     {itoa(book.ID)},
		"due_back": {dueBack},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	return decode[handlers.InstanceInfo](t, rec)
}

func TestMyBooks_RequireLogin(t *testing.T) {
	v := newEnv(t)

	assert.Equal(t, http.StatusUnauthorized, v.get("/my_books/", "").Code)
	assert.Equal(t, http.StatusUnauthorized, v.get("/my_books/create2/", "").Code)
	assert.Equal(t, http.StatusUnauthorized, v.postForm("/my_books/create2/", "", url.Values{}).Code)
	assert.Equal(t, http.StatusUnauthorized, v.get("/my_books/"+uuid.NewString(), "").Code)
	assert.Equal(t, http.StatusUnauthorized, v.postForm("/my_books/delete2/"+uuid.NewString(), "", url.Values{}).Code)
}

func TestBorrow_ForcesStatusAndReader(t *testing.T) {
	v := newEnv(t)
	alice := v.user(t, "alice", false)
	bob := v.user(t, "bob", false)
	dune := v.book(t, "Dune", "Desert planet")

	rec := v.postForm("/my_books/create2/", v.token(t, alice), url.Values{
		"book":        {itoa(dune.ID)},
		"due_back":    {"2026-11-01"},
		"book_status": {"a"},
		"reader":      {itoa(bob.ID)},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	assert.Equal(t, "/my_books/", rec.Header().Get("Location"))

	var stored models.BookInstance
	require.NoError(t, v.db.First(&stored).Error)
	assert.Equal(t, models.StatusTaken, stored.BookStatus)
	require.NotNil(t, stored.ReaderID)
	assert.Equal(t, alice.ID, *stored.ReaderID)
	assert.Equal(t, dune.ID, *stored.BookID)
	assert.Equal(t, "2026-11-01", stored.DueBack.Format("2006-01-02"))
}

func TestBorrow_InvalidSubmissionPersistsNothing(t *testing.T) {
	v := newEnv(t)
	alice := v.user(t, "alice", false)
	dune := v.book(t, "Dune", "Desert planet")
	token := v.token(t, alice)

	cases := map[string]url.Values{
		"due_back": {"book": {itoa(dune.ID)}},
		"book":     {"due_back": {"2026-11-01"}},
	}
	for field, values := range cases {
		rec := v.postForm("/my_books/create2/", token, values)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decode[handlers.FormErrors](t, rec)
		assert.Contains(t, body.Fields, field)
		assert.NotNil(t, body.Input)
	}

	// 日期格式不对
	rec := v.postForm("/my_books/create2/", token, url.Values{"book": {itoa(dune.ID)}, "due_back": {"01/11/2026"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[handlers.FormErrors](t, rec).Fields, "due_back")

	// 书不存在
	rec = v.postForm("/my_books/create2/", token, url.Values{"book": {"999"}, "due_back": {"2026-11-01"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[handlers.FormErrors](t, rec).Fields, "book")

	var count int64
	require.NoError(t, v.db.Model(&models.BookInstance{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestBorrowForm_ListsBooks(t *testing.T) {
	v := newEnv(t)
	alice := v.user(t, "alice", false)
	v.book(t, "Emma", "Matchmaking")
	v.book(t, "Dune", "Desert planet")

	rec := v.get("/my_books/create2/", v.token(t, alice))
	require.Equal(t, http.StatusOK, rec.Code)
	books := decode[handlers.BorrowFormResponse](t, rec).Books
	require.Len(t, books, 2)
	assert.Equal(t, "Dune", books[0].Title)
}

func TestMyBookList_OnlyOwnTakenByDueDate(t *testing.T) {
	v := newEnv(t)
	alice := v.user(t, "alice", false)
	bob := v.user(t, "bob", false)
	dune := v.book(t, "Dune", "Desert planet")
	aliceToken := v.token(t, alice)

	borrow(t, v, aliceToken, dune, "2026-12-01")
	borrow(t, v, aliceToken, dune, "2026-11-01")
	borrow(t, v, v.token(t, bob), dune, "2026-10-01")
	returned := borrow(t, v, aliceToken, dune, "2026-09-01")
	rec := v.postForm("/my_books/update2/"+returned.InstanceID.String(), aliceToken, url.Values{"book_status": {"a"}})
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())

	rec = v.get("/my_books/", aliceToken)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[handlers.PageResponse[handlers.InstanceInfo]](t, rec)
	require.Len(t, page.List, 2)
	assert.Equal(t, "2026-11-01", page.List[0].DueBack.Format("2006-01-02"))
	assert.Equal(t, "2026-12-01", page.List[1].DueBack.Format("2006-01-02"))
	assert.Equal(t, "Taken", page.List[0].StatusDisplay)
	require.NotNil(t, page.List[0].Book)
	assert.Equal(t, "Dune", page.List[0].Book.Title)
	assert.Equal(t, 10, page.Limit)
	assert.EqualValues(t, 1, page.PageMax)
}

func TestMyBookDetail_AnyAuthenticatedUser(t *testing.T) {
	v := newEnv(t)
	alice := v.user(t, "alice", false)
	bob := v.user(t, "bob", false)
	dune := v.book(t, "Dune", "Desert planet")

	instance := borrow(t, v, v.token(t, alice), dune, "2026-11-01")

	rec := v.get("/my_books/"+instance.InstanceID.String(), v.token(t, bob))
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[handlers.InstanceInfo](t, rec)
	assert.Equal(t, instance.InstanceID, got.InstanceID)

	assert.Equal(t, http.StatusNotFound, v.get("/my_books/"+uuid.NewString(), v.token(t, bob)).Code)
	assert.Equal(t, http.StatusNotFound, v.get("/my_books/not-a-uuid", v.token(t, bob)).Code)
}

func TestMyBookUpdate_NonOwnerForbidden(t *testing.T) {
	v := newEnv(t)
	alice := v.user(t, "alice", false)
	bob := v.user(t, "bob", false)
	dune := v.book(t, "Dune", "Desert planet")
	bobToken := v.token(t, bob)

	instance := borrow(t, v, v.token(t, alice), dune, "2026-11-01")
	path := "/my_books/update2/" + instance.InstanceID.String()

	assert.Equal(t, http.StatusForbidden, v.get(path, bobToken).Code)
	assert.Equal(t, http.StatusForbidden, v.postForm(path, bobToken, url.Values{"due_back": {"2030-01-01"}}).Code)

	// 不存在的副本同样是 403
	assert.Equal(t, http.StatusForbidden, v.postForm("/my_books/update2/"+uuid.NewString(), bobToken, url.Values{"due_back": {"2030-01-01"}}).Code)

	var stored models.BookInstance
	require.NoError(t, v.db.First(&stored, "instance_id = ?", instance.InstanceID).Error)
	assert.Equal(t, "2026-11-01", stored.DueBack.Format("2006-01-02"))
	assert.Equal(t, alice.ID, *stored.ReaderID)
}

func TestMyBookUpdate_Owner(t *testing.T) {
	v := newEnv(t)
	alice := v.user(t, "alice", false)
	dune := v.book(t, "Dune", "Desert planet")
	token := v.token(t, alice)

	instance := borrow(t, v, token, dune, "2026-11-01")
	path := "/my_books/update2/" + instance.InstanceID.String()

	// 编辑页给出允许的下一个状态
	rec := v.get(path, token)
	require.Equal(t, http.StatusOK, rec.Code)
	form := decode[handlers.InstanceEditResponse](t, rec)
	var next []models.LoanStatus
	for _, s := range form.NextStatuses {
		next = append(next, s.Value)
	}
	assert.ElementsMatch(t, []models.LoanStatus{models.StatusProcessing, models.StatusTaken, models.StatusAvailable}, next)

	// 延期
	rec = v.postForm(path, token, url.Values{"due_back": {"2026-12-24"}})
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	var stored models.BookInstance
	require.NoError(t, v.db.First(&stored, "instance_id = ?", instance.InstanceID).Error)
	assert.Equal(t, "2026-12-24", stored.DueBack.Format("2006-01-02"))

	// Taken -> Reserved 不允许
	rec = v.postForm(path, token, url.Values{"book_status": {"r"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[handlers.FormErrors](t, rec).Fields, "book_status")

	// 未知状态
	rec = v.postForm(path, token, url.Values{"book_status": {"x"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// 归还后不再属于借阅人
	rec = v.postForm(path, token, url.Values{"book_status": {"a"}})
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	require.NoError(t, v.db.First(&stored, "instance_id = ?", instance.InstanceID).Error)
	assert.Equal(t, models.StatusAvailable, stored.BookStatus)
	assert.Nil(t, stored.ReaderID)

	assert.Equal(t, http.StatusForbidden, v.postForm(path, token, url.Values{"book_status": {"t"}}).Code)
}

func TestMyBookDelete(t *testing.T) {
	v := newEnv(t)
	alice := v.user(t, "alice", false)
	bob := v.user(t, "bob", false)
	dune := v.book(t, "Dune", "Desert planet")
	aliceToken := v.token(t, alice)

	instance := borrow(t, v, aliceToken, dune, "2026-11-01")
	path := "/my_books/delete2/" + instance.InstanceID.String()

	// 其他人不能删除
	assert.Equal(t, http.StatusForbidden, v.postForm(path, v.token(t, bob), url.Values{}).Code)
	var count int64
	require.NoError(t, v.db.Model(&models.BookInstance{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	rec := v.postForm(path, aliceToken, url.Values{})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/my_books/", rec.Header().Get("Location"))
	require.NoError(t, v.db.Model(&models.BookInstance{}).Count(&count).Error)
	assert.Zero(t, count)

	// 已经删除
	assert.Equal(t, http.StatusForbidden, v.postForm(path, aliceToken, url.Values{}).Code)
}

func TestInstanceInfo_Overdue(t *testing.T) {
	v := newEnv(t)
	alice := v.user(t, "alice", false)
	dune := v.book(t, "Dune", "Desert planet")
	token := v.token(t, alice)

	past := time.Now().AddDate(0, 0, -3).Format("2006-01-02")
	future := time.Now().AddDate(0, 0, 3).Format("2006-01-02")

	assert.True(t, borrow(t, v, token, dune, past).IsOverdue)
	assert.False(t, borrow(t, v, token, dune, future).IsOverdue)
}
