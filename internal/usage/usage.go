// ABOUTME: Usage tracker that records completed exports and drives the review prompt.
// ABOUTME: Persists counters and history through the storage settings table.
package usage

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/harperreed/healthlens/internal/export"
	"github.com/harperreed/healthlens/internal/models"
	"github.com/harperreed/healthlens/internal/storage"
)

// Review prompt thresholds
const (
	MinExports    = 2
	MinCategories = 10
)

// Store is the subset of storage.Repository the tracker needs.
type Store interface {
	RecordExport(r *models.ExportRecord) error
	GetSetting(key string) (string, error)
	SetSetting(key, value string) error
}

// Stats are the accumulated usage counters.
type Stats struct {
	TimesExported       int
	CategoriesExported  int
	LastPromptedVersion string
}

// Tracker implements export.Reporter.
type Tracker struct {
	store  Store
	logger *slog.Logger
	mu     sync.Mutex
}

var _ export.Reporter = (*Tracker)(nil)

// NewTracker creates a Tracker backed by store.
func NewTracker(store Store, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Tracker{store: store, logger: logger}
}

// ExportCompleted appends the export to history and bumps the counters.
func (t *Tracker) ExportCompleted(ctx context.Context, s export.Summary) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	rec := models.NewExportRecord(s.Format, s.Metrics, s.Rows, s.Skipped)
	if err := t.store.RecordExport(rec); err != nil {
		return fmt.Errorf("record export: %w", err)
	}

	stats, err := t.stats()
	if err != nil {
		return err
	}
	stats.TimesExported++
	stats.CategoriesExported += len(s.Metrics)

	if err := t.setInt(storage.SettingTimesExported, stats.TimesExported); err != nil {
		return err
	}
	if err := t.setInt(storage.SettingCategoriesExported, stats.CategoriesExported); err != nil {
		return err
	}

	t.logger.Debug("usage updated", "times", stats.TimesExported, "categories", stats.CategoriesExported)
	return nil
}

// Stats returns the current counters.
func (t *Tracker) Stats() (Stats, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats()
}

// ShouldPromptReview reports whether usage has crossed a threshold and the
// prompt has not yet been shown for version.
func (t *Tracker) ShouldPromptReview(version string) (bool, error) {
	stats, err := t.Stats()
	if err != nil {
		return false, err
	}
	if stats.LastPromptedVersion == version {
		return false, nil
	}
	return stats.TimesExported >= MinExports || stats.CategoriesExported >= MinCategories, nil
}

// MarkPrompted records that the prompt was shown for version.
func (t *Tracker) MarkPrompted(version string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.store.SetSetting(storage.SettingLastPromptedVersion, version); err != nil {
		return fmt.Errorf("mark prompted: %w", err)
	}
	return nil
}

func (t *Tracker) stats() (Stats, error) {
	var s Stats
	var err error

	if s.TimesExported, err = t.getInt(storage.SettingTimesExported); err != nil {
		return s, err
	}
	if s.CategoriesExported, err = t.getInt(storage.SettingCategoriesExported); err != nil {
		return s, err
	}
	if s.LastPromptedVersion, err = t.store.GetSetting(storage.SettingLastPromptedVersion); err != nil {
		return s, fmt.Errorf("read usage: %w", err)
	}
	return s, nil
}

func (t *Tracker) getInt(key string) (int, error) {
	v, err := t.store.GetSetting(key)
	if err != nil {
		return 0, fmt.Errorf("read usage: %w", err)
	}
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		t.logger.Warn("resetting corrupt usage counter", "key", key, "value", v)
		return 0, nil
	}
	return n, nil
}

func (t *Tracker) setInt(key string, n int) error {
	if err := t.store.SetSetting(key, strconv.Itoa(n)); err != nil {
		return fmt.Errorf("write usage: %w", err)
	}
	return nil
}
