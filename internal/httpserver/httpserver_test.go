package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/araujodev/zapvitrine/internal/catalog"
	"github.com/araujodev/zapvitrine/internal/models"
	"github.com/araujodev/zapvitrine/internal/repo"
	"github.com/araujodev/zapvitrine/internal/session"
)

type memStore struct {
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

func (m *memStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *memStore) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *memStore) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.User{}))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return &repo.GormRepo{DB: db}
}

func floatptr(f float64) *float64 { return &f }

func approvedClient() *session.Session {
	return &session.Session{User: &models.User{
		UID:    "client-1",
		Role:   models.RoleClient,
		Status: models.StatusApproved,
	}}
}

func pendingClient() *session.Session {
	return &session.Session{User: &models.User{
		UID:    "client-1",
		Role:   models.RoleClient,
		Status: models.StatusPending,
	}}
}

func seededCatalog(products ...models.Product) *catalog.Service {
	svc := &catalog.Service{}
	svc.Seed(products)
	return svc
}

func testProduct(desc, category string, price *float64) models.Product {
	return models.Product{
		ID:          uuid.New(),
		Description: desc,
		Category:    category,
		Price:       price,
		ImagePath:   "products/x/img.jpg",
		CreatedAt:   time.Now(),
	}
}

func doJSONRequest(t *testing.T, e *echo.Echo, method, path string, body any) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return rec, c
}
