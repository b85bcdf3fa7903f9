// Package state is the local client-side store: one-shot link feedback
// handed over from the callback listener, and per-view log filter
// preferences that survive restarts. Nothing here mirrors backend data.
package state

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/notidash/internal/models"
)

// LinkResult is the outcome of one provider connect attempt, written by
// the callback listener and consumed exactly once by the next UI read.
type LinkResult struct {
	ID        uint            `gorm:"primarykey"`
	Provider  models.Provider `gorm:"index"`
	Success   bool
	Message   string
	CreatedAt time.Time
}

// LogFilterPref remembers the last log filter used for one view, keyed
// by view name ("logs", "weather", ...).
type LogFilterPref struct {
	View      string `gorm:"primarykey"`
	Category  models.Category
	Status    models.RunStatus
	UpdatedAt time.Time
}

// Store wraps the local SQLite database
type Store struct {
	db *gorm.DB
}

// Open opens (and creates if needed) the local store at dsn
func Open(dsn string) (*Store, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) migrate() error {
	return s.db.AutoMigrate(
		&LinkResult{},
		&LogFilterPref{},
	)
}

// Close closes the database connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveLinkResult records the outcome of a connect attempt. Only the
// latest result per provider is kept.
func (s *Store) SaveLinkResult(ctx context.Context, provider models.Provider, success bool, message string) error {
	if err := s.db.WithContext(ctx).Where("provider = ?", provider).Delete(&LinkResult{}).Error; err != nil {
		return err
	}
	result := LinkResult{
		Provider: provider,
		Success:  success,
		Message:  message,
	}
	return s.db.WithContext(ctx).Create(&result).Error
}

// TakeLinkResult returns and clears the pending result for a provider.
// The second return is false when nothing is pending, so feedback is
// shown at most once.
func (s *Store) TakeLinkResult(ctx context.Context, provider models.Provider) (*LinkResult, bool, error) {
	var result LinkResult
	err := s.db.WithContext(ctx).Where("provider = ?", provider).First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if err := s.db.WithContext(ctx).Delete(&LinkResult{}, result.ID).Error; err != nil {
		return nil, false, err
	}
	return &result, true, nil
}

// SaveLogFilter remembers the filter last used by one view
func (s *Store) SaveLogFilter(ctx context.Context, view string, filter models.LogFilter) error {
	pref := LogFilterPref{
		View:     view,
		Category: filter.Category,
		Status:   filter.Status,
	}
	return s.db.WithContext(ctx).Save(&pref).Error
}

// LogFilter returns the remembered filter for one view, or a zero
// filter when the view has none saved yet.
func (s *Store) LogFilter(ctx context.Context, view string) (models.LogFilter, error) {
	var pref LogFilterPref
	err := s.db.WithContext(ctx).Where("view = ?", view).First(&pref).Error
	if err == gorm.ErrRecordNotFound {
		return models.LogFilter{}, nil
	}
	if err != nil {
		return models.LogFilter{}, err
	}
	return models.LogFilter{Category: pref.Category, Status: pref.Status}, nil
}
