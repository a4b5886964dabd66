// Package kvstore is the local persistence layer for per-session state.
// One JSON document per key, single writer per key, no transactions needed.
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Store interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}

type record struct {
	Key       string    `gorm:"primaryKey"`
	Value     []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (record) TableName() string {
	return "records"
}

type SQLiteStore struct {
	DB *gorm.DB
}

func Open(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&record{}); err != nil {
		return nil, err
	}
	return &SQLiteStore{DB: db}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	var rec record
	if err := s.DB.WithContext(ctx).First(&rec, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(rec.Value, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	rec := record{Key: key, Value: data, UpdatedAt: time.Now().UTC()}
	return s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	return s.DB.WithContext(ctx).Delete(&record{}, "key = ?", key).Error
}

func (s *SQLiteStore) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
