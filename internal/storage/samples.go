// ABOUTME: Sample CRUD operations for SQLite storage.
// ABOUTME: Implements Repository interface methods for samples.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/healthlens/internal/models"
)

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		t, _ = time.Parse(time.RFC3339Nano, s)
	}
	return t
}

const sampleColumns = `id, metric_id, value, unit, recorded_at, source, notes, created_at`

// CreateSample stores a new sample in the database.
func (d *DB) CreateSample(s *models.Sample) error {
	query := `
		INSERT INTO samples (` + sampleColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := d.db.Exec(query,
		s.ID.String(),
		string(s.MetricID),
		s.Value,
		s.Unit,
		formatTime(s.RecordedAt),
		s.Source,
		s.Notes,
		formatTime(s.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create sample: %w", err)
	}
	return nil
}

// GetSample retrieves a sample by ID or ID prefix.
func (d *DB) GetSample(idOrPrefix string) (*models.Sample, error) {
	id, err := d.resolveSampleID(idOrPrefix)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + sampleColumns + ` FROM samples WHERE id = ?`
	return scanSample(d.db.QueryRow(query, id))
}

// ListSamples returns up to limit samples of one metric, most recent first.
// A nil range returns the full history.
func (d *DB) ListSamples(ctx context.Context, metric models.MetricID, rng *models.DateRange, limit int) ([]*models.Sample, error) {
	query := `SELECT ` + sampleColumns + ` FROM samples WHERE metric_id = ?`
	args := []interface{}{string(metric)}

	if rng != nil {
		query += ` AND recorded_at >= ? AND recorded_at <= ?`
		args = append(args, formatTime(rng.Start), formatTime(rng.End))
	}
	query += ` ORDER BY recorded_at DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list samples: %w", err)
	}
	defer rows.Close()

	return scanSamples(rows)
}

// ListRecent retrieves samples with optional filtering by metric.
// Results are sorted by RecordedAt descending (most recent first).
func (d *DB) ListRecent(metric *models.MetricID, limit int) ([]*models.Sample, error) {
	query := `SELECT ` + sampleColumns + ` FROM samples`
	var args []interface{}

	if metric != nil {
		query += ` WHERE metric_id = ?`
		args = append(args, string(*metric))
	}
	query += ` ORDER BY recorded_at DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list samples: %w", err)
	}
	defer rows.Close()

	return scanSamples(rows)
}

// DeleteSample removes a sample by ID or prefix.
func (d *DB) DeleteSample(idOrPrefix string) error {
	id, err := d.resolveSampleID(idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete sample: %w", err)
	}

	result, err := d.db.Exec("DELETE FROM samples WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete sample: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete sample: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("not found: %s", idOrPrefix)
	}

	return nil
}

// CountSamples returns the number of stored samples per metric.
func (d *DB) CountSamples() (map[models.MetricID]int, error) {
	rows, err := d.db.Query(`SELECT metric_id, COUNT(*) FROM samples GROUP BY metric_id`)
	if err != nil {
		return nil, fmt.Errorf("count samples: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.MetricID]int)
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scan sample count: %w", err)
		}
		counts[models.MetricID(id)] = n
	}
	return counts, rows.Err()
}

// resolveSampleID finds the full ID from a prefix.
func (d *DB) resolveSampleID(idOrPrefix string) (string, error) {
	// If it looks like a full UUID, use it directly
	if len(idOrPrefix) == 36 && strings.Count(idOrPrefix, "-") == 4 {
		return idOrPrefix, nil
	}

	rows, err := d.db.Query(`SELECT id FROM samples WHERE id LIKE ? || '%'`, idOrPrefix)
	if err != nil {
		return "", fmt.Errorf("resolve sample ID: %w", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan sample ID: %w", err)
		}
		matches = append(matches, id)
	}

	return pickMatch(idOrPrefix, matches)
}

// pickMatch reduces prefix matches to exactly one ID.
func pickMatch(idOrPrefix string, matches []string) (string, error) {
	if len(matches) == 0 {
		return "", fmt.Errorf("not found: %s", idOrPrefix)
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("ambiguous prefix %s: matches multiple records", idOrPrefix)
	}
	return matches[0], nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanSample scans a single row into a Sample struct.
func scanSample(row scanner) (*models.Sample, error) {
	var s models.Sample
	var idStr, metricID, recordedAt, createdAt string
	var source, notes sql.NullString

	err := row.Scan(&idStr, &metricID, &s.Value, &s.Unit, &recordedAt, &source, &notes, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("not found")
		}
		return nil, fmt.Errorf("scan sample: %w", err)
	}

	s.ID, _ = uuid.Parse(idStr)
	s.MetricID = models.MetricID(metricID)
	s.RecordedAt = parseTime(recordedAt)
	s.CreatedAt = parseTime(createdAt)
	s.Source = source.String
	if notes.Valid {
		s.Notes = &notes.String
	}

	return &s, nil
}

// scanSamples scans multiple rows into a slice of Samples.
func scanSamples(rows *sql.Rows) ([]*models.Sample, error) {
	var samples []*models.Sample
	for rows.Next() {
		s, err := scanSample(rows)
		if err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}
	return samples, rows.Err()
}
