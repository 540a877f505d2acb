package flash

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(Options{TTL: time.Minute})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_PushPop(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Push(ctx, "sid-1", Success("Book Added!", "")))
	require.NoError(t, s.Push(ctx, "sid-1", Error("Error", "Failed to delete book")))
	require.NoError(t, s.Push(ctx, "sid-2", Success("Deleted!", "Your book has been deleted.")))

	toasts, err := s.Pop(ctx, "sid-1")
	require.NoError(t, err)
	require.Len(t, toasts, 2)
	assert.Equal(t, "Book Added!", toasts[0].Title)
	assert.Equal(t, KindError, toasts[1].Kind)

	// One-shot: a second pop is empty.
	toasts, err = s.Pop(ctx, "sid-1")
	require.NoError(t, err)
	assert.Empty(t, toasts)

	// Other sessions are untouched.
	toasts, err = s.Pop(ctx, "sid-2")
	require.NoError(t, err)
	require.Len(t, toasts, 1)
	assert.Equal(t, "Your book has been deleted.", toasts[0].Text)
}

func TestStore_PushRequiresSession(t *testing.T) {
	s := newTestStore(t)
	assert.Error(t, s.Push(context.Background(), "", Success("x", "")))

	toasts, err := s.Pop(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, toasts)
}

func TestStore_SessionID(t *testing.T) {
	s := newTestStore(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sid := s.SessionID(rec, req)

	_, err := uuid.Parse(sid)
	require.NoError(t, err)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	// An existing cookie is reused without a new Set-Cookie.
	rec2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	req2.AddCookie(cookies[0])
	assert.Equal(t, sid, s.SessionID(rec2, req2))
	assert.Empty(t, rec2.Result().Cookies())

	// A forged cookie is replaced.
	rec3 := httptest.NewRecorder()
	req3 := httptest.NewRequest(http.MethodGet, "/", nil)
	req3.AddCookie(&http.Cookie{Name: CookieName, Value: "../../etc"})
	assert.NotEqual(t, "../../etc", s.SessionID(rec3, req3))
}

func TestStore_AddTake(t *testing.T) {
	s := newTestStore(t)

	rec := httptest.NewRecorder()
	s.Add(rec, httptest.NewRequest(http.MethodPost, "/create-book", nil), Success("Book Added!", ""))
	cookie := rec.Result().Cookies()[0]

	req := httptest.NewRequest(http.MethodGet, "/books", nil)
	req.AddCookie(cookie)
	toasts := s.Take(httptest.NewRecorder(), req)
	require.Len(t, toasts, 1)
	assert.Equal(t, "Book Added!", toasts[0].Title)
}
