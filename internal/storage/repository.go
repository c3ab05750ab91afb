// ABOUTME: Repository interface for health sample storage.
// ABOUTME: Defines contract for samples, export history, and settings.
package storage

import (
	"context"

	"github.com/harperreed/healthlens/internal/models"
)

// Repository defines the storage interface for health data.
// It also satisfies export.Source, so any backend can feed an export.
type Repository interface {
	// Sample operations
	CreateSample(s *models.Sample) error
	GetSample(idOrPrefix string) (*models.Sample, error)
	ListSamples(ctx context.Context, metric models.MetricID, rng *models.DateRange, limit int) ([]*models.Sample, error)
	ListRecent(metric *models.MetricID, limit int) ([]*models.Sample, error)
	DeleteSample(idOrPrefix string) error
	CountSamples() (map[models.MetricID]int, error)

	// Export history
	RecordExport(r *models.ExportRecord) error
	ListExports(limit int) ([]*models.ExportRecord, error)

	// Settings
	GetSetting(key string) (string, error)
	SetSetting(key, value string) error

	// Lifecycle
	Close() error
}
