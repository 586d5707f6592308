package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/leadhub/pkg/cookie"
	"github.com/dmitrymomot/leadhub/pkg/session"
)

func newManager(t *testing.T) (*session.Manager, *session.MemoryStore) {
	t.Helper()

	jar, err := cookie.New([]string{strings.Repeat("s", 32)})
	require.NoError(t, err)

	store := session.NewMemoryStore(0)
	t.Cleanup(store.Close)

	return session.NewManager(store, jar, session.Config{CookieName: "sid", TTL: time.Hour}), store
}

func withCookies(rec *httptest.ResponseRecorder, method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge >= 0 {
			req.AddCookie(c)
		}
	}
	return req
}

func TestManager_StartAndLoad(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m, _ := newManager(t)

	rec := httptest.NewRecorder()
	sess, err := m.Start(ctx, rec)
	require.NoError(t, err)
	assert.False(t, sess.IsAuthenticated())

	loaded, err := m.Load(ctx, withCookies(rec, http.MethodGet, "/"))
	require.NoError(t, err)
	assert.Equal(t, sess.ID, loaded.ID)

	_, err = m.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestManager_AuthenticateRotatesID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m, store := newManager(t)

	rec := httptest.NewRecorder()
	anon, err := m.Start(ctx, rec)
	require.NoError(t, err)

	userID := uuid.New()
	rec2 := httptest.NewRecorder()
	authed, err := m.Authenticate(ctx, rec2, withCookies(rec, http.MethodPost, "/auth/signin"), userID)
	require.NoError(t, err)

	assert.NotEqual(t, anon.ID, authed.ID)
	assert.Equal(t, userID, authed.UserID)
	assert.Equal(t, 1, store.Len())

	_, err = store.Get(ctx, anon.ID)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestManager_Destroy(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m, store := newManager(t)

	rec := httptest.NewRecorder()
	_, err := m.Start(ctx, rec)
	require.NoError(t, err)

	out := httptest.NewRecorder()
	require.NoError(t, m.Destroy(ctx, out, withCookies(rec, http.MethodPost, "/auth/signout")))
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, -1, out.Result().Cookies()[0].MaxAge)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m, _ := newManager(t)

	var seen string
	capture := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = session.IDFromContext(r.Context())
	})

	t.Run("load leaves anonymous requests alone", func(t *testing.T) {
		rec := httptest.NewRecorder()
		m.Middleware(capture).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Empty(t, seen)
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("ensure starts a session", func(t *testing.T) {
		rec := httptest.NewRecorder()
		m.Ensure(capture).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/inquiries/token", nil))
		assert.NotEmpty(t, seen)
		assert.NotEmpty(t, rec.Result().Cookies())
	})

	t.Run("ensure reuses an existing session", func(t *testing.T) {
		rec := httptest.NewRecorder()
		sess, err := m.Start(ctx, rec)
		require.NoError(t, err)

		m.Ensure(capture).ServeHTTP(httptest.NewRecorder(), withCookies(rec, http.MethodGet, "/"))
		assert.Equal(t, sess.ID, seen)
	})

	t.Run("require auth", func(t *testing.T) {
		rec := httptest.NewRecorder()
		m.RequireAuth(capture).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/manufacturer/leads", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		login := httptest.NewRecorder()
		_, err := m.Authenticate(ctx, login, httptest.NewRequest(http.MethodPost, "/", nil), uuid.New())
		require.NoError(t, err)

		rec = httptest.NewRecorder()
		m.RequireAuth(capture).ServeHTTP(rec, withCookies(login, http.MethodGet, "/manufacturer/leads"))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
