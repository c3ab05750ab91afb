// ABOUTME: Export history and settings operations for SQLite storage.
// ABOUTME: Records completed exports and holds small key/value settings.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/healthlens/internal/models"
)

// RecordExport appends an entry to the export history.
func (d *DB) RecordExport(r *models.ExportRecord) error {
	_, err := d.db.Exec(`
		INSERT INTO exports (id, format, metrics, row_count, skipped, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		r.ID.String(),
		string(r.Format),
		joinMetrics(r.Metrics),
		r.Rows,
		r.Skipped,
		formatTime(r.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("record export: %w", err)
	}
	return nil
}

// ListExports returns export history, newest first.
func (d *DB) ListExports(limit int) ([]*models.ExportRecord, error) {
	query := `
		SELECT id, format, metrics, row_count, skipped, created_at
		FROM exports
		ORDER BY created_at DESC
	`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}
	defer rows.Close()

	var records []*models.ExportRecord
	for rows.Next() {
		var r models.ExportRecord
		var idStr, format, metrics, createdAt string
		if err := rows.Scan(&idStr, &format, &metrics, &r.Rows, &r.Skipped, &createdAt); err != nil {
			return nil, fmt.Errorf("scan export: %w", err)
		}
		r.ID, _ = uuid.Parse(idStr)
		r.Format = models.Format(format)
		r.Metrics = splitMetrics(metrics)
		r.CreatedAt = parseTime(createdAt)
		records = append(records, &r)
	}
	return records, rows.Err()
}

// GetSetting returns the value stored under key, or "" when unset.
func (d *DB) GetSetting(key string) (string, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get setting %s: %w", key, err)
	}
	return value, nil
}

// SetSetting stores value under key, replacing any previous value.
func (d *DB) SetSetting(key, value string) error {
	_, err := d.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}

func joinMetrics(ids []models.MetricID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ",")
}

func splitMetrics(s string) []models.MetricID {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	ids := make([]models.MetricID, len(parts))
	for i, p := range parts {
		ids[i] = models.MetricID(p)
	}
	return ids
}
