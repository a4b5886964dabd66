// Package catalog holds the in-memory product cache and derives the
// filtered view the storefront displays.
package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/araujodev/zapvitrine/internal/blob"
	"github.com/araujodev/zapvitrine/internal/models"
)

// EmptyReason tells the caller which kind of empty result it is looking at,
// so each case can get its own empty-state messaging.
type EmptyReason int

const (
	ReasonNone EmptyReason = iota
	ReasonCatalogEmpty
	ReasonNoCategoryMatch
	ReasonNoSearchMatch
)

type Lister interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
}

type Service struct {
	Repo  Lister
	Blobs blob.Store

	mu       sync.RWMutex
	products []models.Product
}

// Refresh refetches the full product list. Products whose image reference
// does not resolve are excluded from the cache. On failure the previous
// cache is kept.
func (s *Service) Refresh(ctx context.Context) error {
	items, err := s.Repo.ListProducts(ctx)
	if err != nil {
		return err
	}

	kept := make([]models.Product, 0, len(items))
	for _, p := range items {
		if s.Blobs != nil && !s.Blobs.Resolve(ctx, p.ImagePath) {
			continue
		}
		kept = append(kept, p)
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].CreatedAt.After(kept[j].CreatedAt)
	})

	s.mu.Lock()
	s.products = kept
	s.mu.Unlock()
	return nil
}

// Seed replaces the cache directly, bypassing the store.
func (s *Service) Seed(products []models.Product) {
	kept := make([]models.Product, len(products))
	copy(kept, products)
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].CreatedAt.After(kept[j].CreatedAt)
	})

	s.mu.Lock()
	s.products = kept
	s.mu.Unlock()
}

func (s *Service) All() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Get finds one cached product by id.
func (s *Service) Get(id uuid.UUID) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// Filter derives the displayed subset. Category matches are exact and
// case-sensitive; the search term is a case-insensitive substring match
// over description or category; both compose with AND. Order is preserved,
// so the result stays newest-first.
func (s *Service) Filter(category, term *string) ([]models.Product, EmptyReason) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.products) == 0 {
		return nil, ReasonCatalogEmpty
	}

	subset := s.products
	if category != nil {
		narrowed := make([]models.Product, 0, len(subset))
		for _, p := range subset {
			if p.Category == *category {
				narrowed = append(narrowed, p)
			}
		}
		if len(narrowed) == 0 {
			return nil, ReasonNoCategoryMatch
		}
		subset = narrowed
	}

	if term != nil && strings.TrimSpace(*term) != "" {
		needle := strings.ToLower(*term)
		narrowed := make([]models.Product, 0, len(subset))
		for _, p := range subset {
			if strings.Contains(strings.ToLower(p.Description), needle) ||
				strings.Contains(strings.ToLower(p.Category), needle) {
				narrowed = append(narrowed, p)
			}
		}
		if len(narrowed) == 0 {
			return nil, ReasonNoSearchMatch
		}
		subset = narrowed
	}

	out := make([]models.Product, len(subset))
	copy(out, subset)
	return out, ReasonNone
}
