package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/araujodev/zapvitrine/internal/cart"
	"github.com/araujodev/zapvitrine/internal/kvstore"
	"github.com/araujodev/zapvitrine/internal/logging"
	"github.com/araujodev/zapvitrine/internal/middleware/auth"
	"github.com/araujodev/zapvitrine/internal/service"
	"github.com/araujodev/zapvitrine/internal/tokens"
)

type AuthHTTP struct {
	Svc           *service.UserService
	Carts         kvstore.Store
	JWTSecret     []byte
	RefreshSecret []byte
}

func CreateCookie(name, value, path string, expTime time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  expTime,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	u, err := h.Svc.Register(ctx, req.Email, req.Name, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("register_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, err.Error())
		}
		l.Error("register_error", "status", 502, "error", err)
		return c.JSON(http.StatusBadGateway, "store unavailable")
	}

	l.Info("user registered", "uid", u.UID)
	return c.JSON(http.StatusCreated, u)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	u, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrValidation) || errors.Is(err, service.ErrUnauthorized) {
			l.Warn("login_error", "status", 401, "error", err)
			return c.JSON(http.StatusUnauthorized, "invalid credentials")
		}
		l.Error("login_error", "status", 502, "error", err)
		return c.JSON(http.StatusBadGateway, "store unavailable")
	}

	accessExp := time.Now().Add(tokens.AccessTTL)
	accessToken, err := tokens.SignAccess(u.UID, u.Role, h.JWTSecret, accessExp)
	if err != nil {
		l.Error("login_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "could not create token")
	}

	refreshExp := time.Now().Add(tokens.RefreshTTL)
	refreshToken, err := tokens.SignRefresh(u.UID, h.RefreshSecret, refreshExp)
	if err != nil {
		l.Error("login_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "could not create refresh token")
	}

	c.SetCookie(CreateCookie("accessToken", accessToken, "/", accessExp))
	c.SetCookie(CreateCookie("refreshToken", refreshToken, "/", refreshExp))

	l.Info("user logged in", "uid", u.UID)
	return c.JSON(http.StatusOK, echo.Map{
		"user":     u,
		"is_admin": u.Role == "admin",
		"visible":  u.Status == "approved",
	})
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()

	cookie, err := c.Cookie("refreshToken")
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusUnauthorized, "missing refresh token")
	}
	claims, err := tokens.Parse(cookie.Value, h.RefreshSecret)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, "invalid refresh token")
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return c.JSON(http.StatusUnauthorized, "invalid refresh token")
	}
	uid, err := tokens.Subject(claims)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, "invalid refresh token")
	}

	u, err := h.Svc.GetByUID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, "unknown account")
	}

	accessExp := time.Now().Add(tokens.AccessTTL)
	accessToken, err := tokens.SignAccess(u.UID, u.Role, h.JWTSecret, accessExp)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, "could not create token")
	}
	c.SetCookie(CreateCookie("accessToken", accessToken, "/", accessExp))

	return c.JSON(http.StatusOK, echo.Map{"uid": u.UID})
}

// Logout ends the session: cookies expire and the owner's cart record is
// discarded, not merely hidden.
func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	sess := auth.CurrentSession(c)
	crt := cart.Load(ctx, h.Carts, sess)
	crt.Discard(ctx)

	expired := time.Now().Add(-1 * time.Hour)
	c.SetCookie(CreateCookie("accessToken", "", "/", expired))
	c.SetCookie(CreateCookie("refreshToken", "", "/", expired))

	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

func (h *AuthHTTP) Me(c echo.Context) error {
	sess := auth.CurrentSession(c)
	if sess.User == nil {
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"user":     sess.User,
		"is_admin": sess.IsAdmin(),
		"visible":  sess.Visible(),
	})
}
