package repo

import (
	"context"
	"time"

	"gorm.io/gorm/clause"

	"github.com/araujodev/zapvitrine/internal/models"
)

func (r *GormRepo) CreateUser(ctx context.Context, u *models.User) error {
	return r.DB.WithContext(ctx).Create(u).Error
}

func (r *GormRepo) GetUserByUID(ctx context.Context, uid string) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).First(&u, "uid = ?", uid).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).First(&u, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// ListUsers returns all users, optionally narrowed to one approval status.
func (r *GormRepo) ListUsers(ctx context.Context, status *models.Status) ([]models.User, error) {
	q := r.DB.WithContext(ctx).Order("created_at ASC")
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var users []models.User
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *GormRepo) SetUserStatus(ctx context.Context, uid string, status models.Status) error {
	return r.DB.WithContext(ctx).Model(&models.User{}).
		Where("uid = ?", uid).
		Updates(map[string]any{"status": status, "updated_at": time.Now().UTC()}).Error
}

func (r *GormRepo) UpsertUser(ctx context.Context, u *models.User) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "uid"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "name", "updated_at"}),
	}).Create(u).Error
}
