package session

import (
	"context"
	"net/http"

	"bramble/internal/credential"
)

// CookieName is the cookie that carries the signed identity token.
const CookieName = "username"

type contextKey struct{}

// Manager resolves the logged-in identity from the signed username cookie.
// It is stateless: the cookie itself is the whole session.
type Manager struct {
	signer *credential.Signer
}

// NewManager creates a new session manager.
func NewManager(signer *credential.Signer) *Manager {
	return &Manager{signer: signer}
}

// CurrentUser returns the username embedded in cookieValue. The second
// return value is false for a missing, tampered or foreign token.
func (m *Manager) CurrentUser(cookieValue string) (string, bool) {
	if cookieValue == "" {
		return "", false
	}
	username, err := m.signer.Verify(cookieValue)
	if err != nil || username == "" {
		return "", false
	}
	return username, true
}

// FromRequest resolves the identity from the request's cookie jar.
func (m *Manager) FromRequest(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", false
	}
	return m.CurrentUser(cookie.Value)
}

// IssueCookie returns the cookie that logs username in.
func (m *Manager) IssueCookie(username string) (*http.Cookie, error) {
	token, err := m.signer.Sign(username)
	if err != nil {
		return nil, err
	}
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// ClearCookie returns the cookie that logs the browser out.
func (m *Manager) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

// WithUser adds the current username to the request context.
func (m *Manager) WithUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, _ := m.FromRequest(r)
		ctx := context.WithValue(r.Context(), contextKey{}, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireLogin redirects anonymous requests to the login form.
func (m *Manager) RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := m.FromRequest(r); !ok {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Username returns the identity stored by WithUser, or "" for anonymous.
func Username(ctx context.Context) string {
	username, _ := ctx.Value(contextKey{}).(string)
	return username
}
