package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docshore/web/internal/session"
)

// testSecret is a 64-byte secret for testing
const testSecret = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

func TestStoreSetAndGet(t *testing.T) {
	t.Parallel()

	store := session.NewStore(testSecret, time.Hour, false)

	data := &session.Data{
		UserID:    uuid.New(),
		Username:  "reader",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}

	w := httptest.NewRecorder()
	require.NoError(t, store.Set(w, data))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, session.CookieName, cookies[0].Name)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])

	got, err := store.Get(req)
	require.NoError(t, err)
	assert.Equal(t, data.UserID, got.UserID)
	assert.Equal(t, data.Username, got.Username)
}

func TestStoreNoCookie(t *testing.T) {
	t.Parallel()

	store := session.NewStore(testSecret, time.Hour, false)
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, err := store.Get(req)
	require.Error(t, err)
}

func TestStoreRejectsTamperedCookie(t *testing.T) {
	t.Parallel()

	store := session.NewStore(testSecret, time.Hour, false)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "tampered"})

	_, err := store.Get(req)
	require.Error(t, err)
}

func TestStoreRejectsExpiredSession(t *testing.T) {
	t.Parallel()

	store := session.NewStore(testSecret, time.Hour, false)

	data := &session.Data{
		UserID:    uuid.New(),
		Username:  "reader",
		CreatedAt: time.Now().Add(-2 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}

	w := httptest.NewRecorder()
	require.NoError(t, store.Set(w, data))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(w.Result().Cookies()[0])

	_, err := store.Get(req)
	require.Error(t, err)
}

func TestMiddlewareAndFromContext(t *testing.T) {
	t.Parallel()

	store := session.NewStore(testSecret, time.Hour, false)

	data := &session.Data{
		UserID:    uuid.New(),
		Username:  "reader",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	w := httptest.NewRecorder()
	require.NoError(t, store.Set(w, data))

	var got *session.Data
	handler := session.Middleware(store)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = session.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(w.Result().Cookies()[0])
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, got)
	assert.Equal(t, "reader", got.Username)

	// no cookie means anonymous
	got = nil
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Nil(t, got)
	assert.Nil(t, session.FromContext(context.Background()))
}
