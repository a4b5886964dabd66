package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/araujodev/zapvitrine/internal/blob"
	"github.com/araujodev/zapvitrine/internal/logging"
	"github.com/araujodev/zapvitrine/internal/models"
	"github.com/araujodev/zapvitrine/internal/mykafka"
	"github.com/araujodev/zapvitrine/internal/repo"
	"github.com/araujodev/zapvitrine/internal/search"
)

const (
	DescriptionMinLen = 3
	DescriptionMaxLen = 600
	MaxImageBytes     = 5 << 20
)

var imageExtByType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type ProductService struct {
	Repo     *repo.GormRepo
	Blobs    blob.Store
	Producer *mykafka.Producer
	Indexer  *search.Indexer
}

type NewProduct struct {
	Description string
	Price       *float64
	Category    string
	Image       io.Reader
	ImageType   string
	ImageSize   int64
}

func (s *ProductService) validate(in NewProduct) error {
	desc := strings.TrimSpace(in.Description)
	if len(desc) < DescriptionMinLen {
		return fmt.Errorf("description must have at least %d characters: %w", DescriptionMinLen, ErrValidation)
	}
	if len(desc) > DescriptionMaxLen {
		return fmt.Errorf("description must have at most %d characters: %w", DescriptionMaxLen, ErrValidation)
	}
	if in.Price != nil && *in.Price <= 0 {
		return fmt.Errorf("price must be positive: %w", ErrValidation)
	}
	if in.Image == nil || in.ImageSize == 0 {
		return fmt.Errorf("image is required: %w", ErrValidation)
	}
	if in.ImageSize > MaxImageBytes {
		return fmt.Errorf("image exceeds %d bytes: %w", MaxImageBytes, ErrValidation)
	}
	if _, ok := imageExtByType[in.ImageType]; !ok {
		return fmt.Errorf("unsupported image type %q: %w", in.ImageType, ErrValidation)
	}
	return nil
}

// Create validates the form, uploads the image and only then writes the
// product record, so a failure never leaves a partial record user-visible.
func (s *ProductService) Create(ctx context.Context, in NewProduct) (*models.Product, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}

	id := uuid.New()
	imagePath := fmt.Sprintf("products/%s/%s%s", id, uuid.NewString(), imageExtByType[in.ImageType])

	if err := s.Blobs.Save(ctx, imagePath, in.Image); err != nil {
		return nil, fmt.Errorf("image upload: %w", err)
	}

	p := &models.Product{
		ID:          id,
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Category:    strings.TrimSpace(in.Category),
		ImagePath:   imagePath,
	}
	if err := s.Repo.CreateProduct(ctx, p); err != nil {
		if derr := s.Blobs.Delete(ctx, imagePath); derr != nil {
			logging.FromContext(ctx).Error("orphan image cleanup failed", "path", imagePath, "error", derr)
		}
		return nil, fmt.Errorf("product create: %w", err)
	}

	s.publish(ctx, map[string]any{
		"type":      "product_created",
		"productID": p.ID,
		"category":  p.Category,
	})
	if err := s.Indexer.IndexProduct(ctx, *p); err != nil {
		logging.FromContext(ctx).Error("search index error", "productID", p.ID, "error", err)
	}

	return p, nil
}

// Delete removes the record first, then best-effort deletes the blob; a
// missing blob is already absent, which counts as success.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return err
	}

	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("product delete: %w", err)
	}

	if err := s.Blobs.Delete(ctx, p.ImagePath); err != nil {
		logging.FromContext(ctx).Warn("image delete failed", "path", p.ImagePath, "error", err)
	}

	s.publish(ctx, map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})
	if err := s.Indexer.DeleteProduct(ctx, id.String()); err != nil {
		logging.FromContext(ctx).Error("search index error", "productID", id, "error", err)
	}

	return nil
}

func (s *ProductService) publish(ctx context.Context, event map[string]any) {
	if err := s.Producer.PublishEvent(ctx, "product_events", fmt.Sprint(event["productID"]), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "error", err)
	}
}
