package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/araujodev/zapvitrine/internal/service"
	"github.com/araujodev/zapvitrine/internal/session"
	"github.com/araujodev/zapvitrine/internal/tokens"
)

const sessionKey = "session"

type Middleware struct {
	Users     *service.UserService
	JWTSecret []byte
}

func (m *Middleware) resolve(c echo.Context) *session.Session {
	cookie, err := c.Cookie("accessToken")
	if err != nil || cookie.Value == "" {
		return &session.Session{}
	}
	claims, err := tokens.Parse(cookie.Value, m.JWTSecret)
	if err != nil {
		return &session.Session{}
	}
	uid, err := tokens.Subject(claims)
	if err != nil {
		return &session.Session{}
	}
	u, err := m.Users.GetByUID(c.Request().Context(), uid)
	if err != nil {
		return &session.Session{}
	}
	return &session.Session{User: u}
}

// Resolve always installs a session, anonymous when no valid cookie is
// present. Visibility gating happens in the handlers.
func (m *Middleware) Resolve(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Set(sessionKey, m.resolve(c))
		return next(c)
	}
}

func (m *Middleware) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess := m.resolve(c)
		if sess.User == nil {
			return c.JSON(http.StatusUnauthorized, "unauthorized")
		}
		c.Set(sessionKey, sess)
		return next(c)
	}
}

func (m *Middleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess := m.resolve(c)
		if sess.User == nil {
			return c.JSON(http.StatusUnauthorized, "unauthorized")
		}
		if !sess.IsAdmin() {
			return c.JSON(http.StatusForbidden, "not enough rights")
		}
		c.Set(sessionKey, sess)
		return next(c)
	}
}

func SetSession(c echo.Context, s *session.Session) {
	c.Set(sessionKey, s)
}

func CurrentSession(c echo.Context) *session.Session {
	if v, ok := c.Get(sessionKey).(*session.Session); ok {
		return v
	}
	return &session.Session{}
}
