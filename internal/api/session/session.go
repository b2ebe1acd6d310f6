// Package session is the authentication gate. It stores the principal
// produced by a login or register strategy in the request session and reads
// it back on later requests, unchanged.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/beerlist/beerlist/internal/core/domain"
)

const (
	DefaultName  = "beerlist.sid"
	principalKey = "principal"
)

// Manager reads and writes the principal of the named session. The session
// middleware (Middleware) must run before any Manager method is used.
type Manager struct {
	name string
}

func NewManager(name string) *Manager {
	if name == "" {
		name = DefaultName
	}
	return &Manager{name: name}
}

// Middleware makes store available to every handler.
func Middleware(store sessions.Store) echo.MiddlewareFunc {
	return echosession.Middleware(store)
}

// NewCookieStore returns a store that keeps the whole session in a signed
// cookie. ttl zero issues browser session cookies that never expire
// server-side. The cookie is not marked Secure so that it round-trips over
// plain HTTP.
func NewCookieStore(secret []byte, ttl time.Duration) sessions.Store {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	store.MaxAge(int(ttl.Seconds()))
	return store
}

// Principal returns the principal held by the current session, or nil when
// the session is anonymous. The error is non-nil only when the session
// store itself failed.
func (m *Manager) Principal(c echo.Context) (*domain.Principal, error) {
	sess, err := m.load(c)
	if err != nil {
		return nil, err
	}
	p, _ := sess.Values[principalKey].(*domain.Principal)
	return p, nil
}

// IsAuthenticated reports whether the session holds a principal. Store
// failures count as unauthenticated.
func (m *Manager) IsAuthenticated(c echo.Context) bool {
	p, err := m.Principal(c)
	return err == nil && p != nil
}

// Establish stores p in the session and writes the session cookie.
func (m *Manager) Establish(c echo.Context, p *domain.Principal) error {
	sess, err := m.load(c)
	if err != nil {
		return err
	}
	sess.Values[principalKey] = p
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// load returns the named session. A cookie that fails to decode (bad
// signature, rotated secret, expired) yields the fresh session the store
// handed back instead of an error.
func (m *Manager) load(c echo.Context) (*sessions.Session, error) {
	sess, err := echosession.Get(m.name, c)
	if err == nil {
		return sess, nil
	}
	var cookieErr securecookie.Error
	if sess != nil && errors.As(err, &cookieErr) && cookieErr.IsDecode() {
		return sess, nil
	}
	return nil, fmt.Errorf("load session: %w", err)
}
