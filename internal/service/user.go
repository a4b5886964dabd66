package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/araujodev/zapvitrine/internal/hash"
	"github.com/araujodev/zapvitrine/internal/logging"
	"github.com/araujodev/zapvitrine/internal/models"
	"github.com/araujodev/zapvitrine/internal/mykafka"
	"github.com/araujodev/zapvitrine/internal/repo"
)

type UserService struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
}

// Register creates a client account. Every new account starts pending;
// approval only ever happens through an explicit admin action.
func (s *UserService) Register(ctx context.Context, email, name, password string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	name = strings.TrimSpace(name)

	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email: %w", ErrValidation)
	}
	if name == "" {
		return nil, fmt.Errorf("name is required: %w", ErrValidation)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("password must have at least 6 characters: %w", ErrValidation)
	}

	if _, err := s.Repo.GetUserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("account already exists: %w", ErrValidation)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Email:        email,
		Name:         name,
		PasswordHash: pwHash,
		Role:         models.RoleClient,
		Status:       models.StatusPending,
	}
	if err := s.Repo.CreateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("user create: %w", err)
	}

	s.publish(ctx, map[string]any{
		"type":  "user_registered",
		"uid":   u.UID,
		"email": u.Email,
	})

	return u, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required: %w", ErrValidation)
	}

	u, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
		}
		return nil, err
	}
	if !hash.CheckPassword(u.PasswordHash, password) {
		return nil, fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
	}
	return u, nil
}

func (s *UserService) GetByUID(ctx context.Context, uid string) (*models.User, error) {
	u, err := s.Repo.GetUserByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", uid, ErrNotFound)
		}
		return nil, err
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context, status *models.Status) ([]models.User, error) {
	return s.Repo.ListUsers(ctx, status)
}

// SetStatus moves an account between pending, approved and rejected. Any
// direction is allowed, including back to pending for re-review.
func (s *UserService) SetStatus(ctx context.Context, uid string, status models.Status) error {
	if !status.Valid() {
		return fmt.Errorf("unknown status %q: %w", status, ErrValidation)
	}
	if _, err := s.GetByUID(ctx, uid); err != nil {
		return err
	}
	if err := s.Repo.SetUserStatus(ctx, uid, status); err != nil {
		return fmt.Errorf("status update: %w", err)
	}

	s.publish(ctx, map[string]any{
		"type":   "user_status_changed",
		"uid":    uid,
		"status": status,
	})

	return nil
}

func (s *UserService) publish(ctx context.Context, event map[string]any) {
	if err := s.Producer.PublishEvent(ctx, "user_events", fmt.Sprint(event["uid"]), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "error", err)
	}
}
