// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines tables for samples, export history, and settings.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS samples (
		id TEXT PRIMARY KEY,
		metric_id TEXT NOT NULL,
		value REAL NOT NULL,
		unit TEXT NOT NULL,
		recorded_at TEXT NOT NULL,
		source TEXT,
		notes TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS exports (
		id TEXT PRIMARY KEY,
		format TEXT NOT NULL,
		metrics TEXT NOT NULL,
		row_count INTEGER NOT NULL,
		skipped INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_samples_metric_recorded ON samples(metric_id, recorded_at DESC);
	CREATE INDEX IF NOT EXISTS idx_samples_recorded ON samples(recorded_at DESC);
	CREATE INDEX IF NOT EXISTS idx_exports_created ON exports(created_at DESC);
	`

	_, err := d.db.Exec(schema)
	return err
}
