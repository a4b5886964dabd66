package catalog

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/araujodev/zapvitrine/internal/models"
)

type fakeLister struct {
	products []models.Product
	err      error
}

func (f *fakeLister) ListProducts(ctx context.Context) ([]models.Product, error) {
	return f.products, f.err
}

type fakeBlobs struct {
	missing map[string]bool
}

func (f *fakeBlobs) Save(ctx context.Context, path string, r io.Reader) error { return nil }
func (f *fakeBlobs) Delete(ctx context.Context, path string) error            { return nil }
func (f *fakeBlobs) Resolve(ctx context.Context, path string) bool            { return !f.missing[path] }

func product(desc, category string, age time.Duration) models.Product {
	return models.Product{
		ID:          uuid.New(),
		Description: desc,
		Category:    category,
		ImagePath:   "products/" + desc + ".jpg",
		CreatedAt:   time.Now().Add(-age),
	}
}

func strptr(s string) *string { return &s }

func seeded(products ...models.Product) *Service {
	s := &Service{}
	s.Seed(products)
	return s
}

func TestFilter_NoFiltersReturnsFullSet(t *testing.T) {
	t.Parallel()

	p1 := product("picanha", "BBQ", time.Hour)
	p2 := product("costela", "BBQ", time.Minute)
	svc := seeded(p1, p2)

	items, reason := svc.Filter(nil, nil)
	assert.Equal(t, ReasonNone, reason)
	assert.Len(t, items, 2)
}

func TestFilter_NewestFirst(t *testing.T) {
	t.Parallel()

	oldest := product("oldest", "BBQ", 3*time.Hour)
	middle := product("middle", "BBQ", 2*time.Hour)
	newest := product("newest", "BBQ", time.Hour)
	svc := seeded(oldest, middle, newest)

	items, _ := svc.Filter(nil, nil)
	require.Len(t, items, 3)
	assert.Equal(t, "newest", items[0].Description)
	assert.Equal(t, "middle", items[1].Description)
	assert.Equal(t, "oldest", items[2].Description)
}

func TestFilter_CategoryScenario(t *testing.T) {
	t.Parallel()

	p1 := product("P1", "BBQ", 3*time.Hour)
	p2 := product("P2", "ROSH", 2*time.Hour)
	p3 := product("P3", "BBQ", time.Hour)
	svc := seeded(p1, p2, p3)

	items, reason := svc.Filter(strptr("BBQ"), nil)
	require.Equal(t, ReasonNone, reason)
	require.Len(t, items, 2)
	// newest first, relative order preserved
	assert.Equal(t, "P3", items[0].Description)
	assert.Equal(t, "P1", items[1].Description)
}

func TestFilter_CategoryIsCaseSensitive(t *testing.T) {
	t.Parallel()

	svc := seeded(product("P1", "BBQ", time.Hour))

	_, reason := svc.Filter(strptr("bbq"), nil)
	assert.Equal(t, ReasonNoCategoryMatch, reason)
}

func TestFilter_SearchTermIsCaseInsensitiveSubstring(t *testing.T) {
	t.Parallel()

	p1 := product("Espetinho de Picanha", "BBQ", 2*time.Hour)
	p2 := product("Refrigerante", "Bebidas", time.Hour)
	svc := seeded(p1, p2)

	items, reason := svc.Filter(nil, strptr("PICANHA"))
	require.Equal(t, ReasonNone, reason)
	require.Len(t, items, 1)
	assert.Equal(t, p1.ID, items[0].ID)

	// matches against category too
	items, reason = svc.Filter(nil, strptr("bebi"))
	require.Equal(t, ReasonNone, reason)
	require.Len(t, items, 1)
	assert.Equal(t, p2.ID, items[0].ID)
}

func TestFilter_CategoryAndTermCompose(t *testing.T) {
	t.Parallel()

	p1 := product("Espetinho de Picanha", "BBQ", 2*time.Hour)
	p2 := product("Picanha Premium", "Carnes", time.Hour)
	svc := seeded(p1, p2)

	items, reason := svc.Filter(strptr("BBQ"), strptr("picanha"))
	require.Equal(t, ReasonNone, reason)
	require.Len(t, items, 1)
	assert.Equal(t, p1.ID, items[0].ID)
}

func TestFilter_BlankTermIgnored(t *testing.T) {
	t.Parallel()

	svc := seeded(product("P1", "BBQ", time.Hour))

	items, reason := svc.Filter(nil, strptr("   "))
	assert.Equal(t, ReasonNone, reason)
	assert.Len(t, items, 1)
}

func TestFilter_DistinctEmptyReasons(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		products []models.Product
		category *string
		term     *string
		want     EmptyReason
	}{
		{name: "empty catalog", products: nil, want: ReasonCatalogEmpty},
		{
			name:     "category misses",
			products: []models.Product{product("P1", "BBQ", time.Hour)},
			category: strptr("ROSH"),
			want:     ReasonNoCategoryMatch,
		},
		{
			name:     "term misses",
			products: []models.Product{product("P1", "BBQ", time.Hour)},
			term:     strptr("sushi"),
			want:     ReasonNoSearchMatch,
		},
		{
			name:     "category hits but term misses",
			products: []models.Product{product("P1", "BBQ", time.Hour)},
			category: strptr("BBQ"),
			term:     strptr("sushi"),
			want:     ReasonNoSearchMatch,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := seeded(tt.products...)
			items, reason := svc.Filter(tt.category, tt.term)
			assert.Empty(t, items)
			assert.Equal(t, tt.want, reason)
		})
	}
}

func TestFilter_SubsetAndIdempotent(t *testing.T) {
	t.Parallel()

	p1 := product("P1", "BBQ", 3*time.Hour)
	p2 := product("P2", "ROSH", 2*time.Hour)
	p3 := product("P3", "BBQ", time.Hour)
	svc := seeded(p1, p2, p3)

	all := svc.All()
	first, _ := svc.Filter(strptr("BBQ"), strptr("p"))
	second, _ := svc.Filter(strptr("BBQ"), strptr("p"))

	assert.Equal(t, first, second)
	for _, p := range first {
		assert.Contains(t, all, p)
	}
}

func TestRefresh_ExcludesUnresolvableImages(t *testing.T) {
	t.Parallel()

	p1 := product("P1", "BBQ", 2*time.Hour)
	p2 := product("P2", "BBQ", time.Hour)

	svc := &Service{
		Repo:  &fakeLister{products: []models.Product{p1, p2}},
		Blobs: &fakeBlobs{missing: map[string]bool{p2.ImagePath: true}},
	}

	require.NoError(t, svc.Refresh(context.Background()))
	items := svc.All()
	require.Len(t, items, 1)
	assert.Equal(t, p1.ID, items[0].ID)
}

func TestRefresh_FailureKeepsLastKnownGood(t *testing.T) {
	t.Parallel()

	p1 := product("P1", "BBQ", time.Hour)
	lister := &fakeLister{products: []models.Product{p1}}
	svc := &Service{Repo: lister, Blobs: &fakeBlobs{}}

	require.NoError(t, svc.Refresh(context.Background()))
	require.Len(t, svc.All(), 1)

	lister.err = errors.New("store unavailable")
	require.Error(t, svc.Refresh(context.Background()))
	assert.Len(t, svc.All(), 1)
}
