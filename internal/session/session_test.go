package session_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"bramble/internal/credential"
	"bramble/internal/session"
)

func newTestManager(t *testing.T) *session.Manager {
	t.Helper()
	signer, err := credential.NewSigner([]byte(strings.Repeat("s", 32)))
	require.NoError(t, err)
	return session.NewManager(signer)
}

func TestCookieRoundTrip(t *testing.T) {
	m := newTestManager(t)

	cookie, err := m.IssueCookie("alice")
	require.NoError(t, err)
	require.Equal(t, session.CookieName, cookie.Name)
	require.True(t, cookie.HttpOnly)
	require.True(t, cookie.Secure)

	username, ok := m.CurrentUser(cookie.Value)
	require.True(t, ok)
	require.Equal(t, "alice", username)
}

func TestTamperedCookieIsAnonymous(t *testing.T) {
	m := newTestManager(t)

	cookie, err := m.IssueCookie("alice")
	require.NoError(t, err)

	tampered := []byte(cookie.Value)
	if tampered[0] == 'A' {
		tampered[0] = 'B'
	} else {
		tampered[0] = 'A'
	}

	_, ok := m.CurrentUser(string(tampered))
	require.False(t, ok)

	_, ok = m.CurrentUser("")
	require.False(t, ok)
}

func TestFromRequest(t *testing.T) {
	m := newTestManager(t)

	cookie, err := m.IssueCookie("alice")
	require.NoError(t, err)

	r := httptest.NewRequest("GET", "/", nil)
	r.AddCookie(cookie)

	username, ok := m.FromRequest(r)
	require.True(t, ok)
	require.Equal(t, "alice", username)

	_, ok = m.FromRequest(httptest.NewRequest("GET", "/", nil))
	require.False(t, ok)
}

func TestWithUserAddsIdentityToContext(t *testing.T) {
	m := newTestManager(t)

	var seen string
	handler := m.WithUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = session.Username(r.Context())
	}))

	cookie, err := m.IssueCookie("alice")
	require.NoError(t, err)

	r := httptest.NewRequest("GET", "/", nil)
	r.AddCookie(cookie)
	handler.ServeHTTP(httptest.NewRecorder(), r)
	require.Equal(t, "alice", seen)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	require.Empty(t, seen)
}

func TestRequireLoginRedirectsAnonymous(t *testing.T) {
	m := newTestManager(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := m.RequireLogin(next)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/_edit/home", nil))
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))

	cookie, err := m.IssueCookie("alice")
	require.NoError(t, err)
	r := httptest.NewRequest("GET", "/_edit/home", nil)
	r.AddCookie(cookie)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestClearCookieExpires(t *testing.T) {
	m := newTestManager(t)

	cookie := m.ClearCookie()
	require.Equal(t, session.CookieName, cookie.Name)
	require.Empty(t, cookie.Value)
	require.Negative(t, cookie.MaxAge)
	require.True(t, cookie.Secure)
}
