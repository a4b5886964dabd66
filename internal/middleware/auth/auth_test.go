package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/araujodev/zapvitrine/internal/models"
	"github.com/araujodev/zapvitrine/internal/repo"
	"github.com/araujodev/zapvitrine/internal/service"
	"github.com/araujodev/zapvitrine/internal/tokens"
)

var testSecret = []byte("test-jwt-secret")

func newTestMiddleware(t *testing.T) (*Middleware, *service.UserService) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	svc := &service.UserService{Repo: &repo.GormRepo{DB: db}}
	return &Middleware{Users: svc, JWTSecret: testSecret}, svc
}

func okHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, "ok")
}

func request(t *testing.T, cookies ...*http.Cookie) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	return rec, echo.New().NewContext(req, rec)
}

func accessCookie(t *testing.T, uid string, role models.Role) *http.Cookie {
	t.Helper()

	token, err := tokens.SignAccess(uid, role, testSecret, time.Now().Add(tokens.AccessTTL))
	require.NoError(t, err)
	return &http.Cookie{Name: "accessToken", Value: token, Path: "/"}
}

func TestRequireLogin_NoCookie(t *testing.T) {
	mw, _ := newTestMiddleware(t)

	rec, c := request(t)
	require.NoError(t, mw.RequireLogin(okHandler)(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireLogin_ValidToken(t *testing.T) {
	mw, svc := newTestMiddleware(t)

	u, err := svc.Register(context.Background(), "maria@example.com", "Maria", "secret1")
	require.NoError(t, err)

	rec, c := request(t, accessCookie(t, u.UID, u.Role))
	require.NoError(t, mw.RequireLogin(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	sess := CurrentSession(c)
	require.NotNil(t, sess.User)
	assert.Equal(t, u.UID, sess.User.UID)
}

func TestAdminOnly_ClientDenied(t *testing.T) {
	mw, svc := newTestMiddleware(t)

	u, err := svc.Register(context.Background(), "maria@example.com", "Maria", "secret1")
	require.NoError(t, err)

	rec, c := request(t, accessCookie(t, u.UID, u.Role))
	require.NoError(t, mw.AdminOnly(okHandler)(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminOnly_UnknownUser(t *testing.T) {
	mw, _ := newTestMiddleware(t)

	rec, c := request(t, accessCookie(t, "ghost-uid", models.RoleAdmin))
	require.NoError(t, mw.AdminOnly(okHandler)(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestResolve_AnonymousSession(t *testing.T) {
	mw, _ := newTestMiddleware(t)

	rec, c := request(t)
	require.NoError(t, mw.Resolve(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	sess := CurrentSession(c)
	assert.Nil(t, sess.User)
	assert.False(t, sess.Visible())
}
