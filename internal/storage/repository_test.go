// ABOUTME: Tests for Repository interface implementations.
// ABOUTME: Runs the same CRUD, range, history, and settings checks against SQLite and Badger.
package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/healthlens/internal/models"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "healthlens-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(tmpDir) })

	db, err := Open(filepath.Join(tmpDir, "healthlens.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func setupTestBadger(t *testing.T) *BadgerStore {
	t.Helper()

	store, err := NewBadgerStore(BadgerConfig{InMemory: true})
	if err != nil {
		t.Fatalf("Failed to open badger: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

// forEachBackend runs fn once per storage backend.
func forEachBackend(t *testing.T, fn func(t *testing.T, repo Repository)) {
	t.Run("sqlite", func(t *testing.T) { fn(t, setupTestDB(t)) })
	t.Run("badger", func(t *testing.T) { fn(t, setupTestBadger(t)) })
}

var base = time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)

func TestCreateAndGetSample(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		s := models.NewSample("bodyMass", 82.5, "kg").
			WithRecordedAt(base).
			WithSource("scale").
			WithNotes("morning weight")

		if err := repo.CreateSample(s); err != nil {
			t.Fatalf("CreateSample failed: %v", err)
		}

		got, err := repo.GetSample(s.ID.String())
		if err != nil {
			t.Fatalf("GetSample failed: %v", err)
		}

		if got.ID != s.ID {
			t.Errorf("ID mismatch: got %v, want %v", got.ID, s.ID)
		}
		if got.MetricID != "bodyMass" {
			t.Errorf("MetricID = %q, want bodyMass", got.MetricID)
		}
		if got.Value != 82.5 || got.Unit != "kg" {
			t.Errorf("value = %v %s, want 82.5 kg", got.Value, got.Unit)
		}
		if !got.RecordedAt.Equal(base) {
			t.Errorf("RecordedAt = %v, want %v", got.RecordedAt, base)
		}
		if got.Source != "scale" {
			t.Errorf("Source = %q, want scale", got.Source)
		}
		if got.Notes == nil || *got.Notes != "morning weight" {
			t.Errorf("Notes mismatch: got %v, want 'morning weight'", got.Notes)
		}
	})
}

func TestGetSampleByPrefix(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		s := models.NewSample("heartRate", 61, "count/min")
		if err := repo.CreateSample(s); err != nil {
			t.Fatalf("CreateSample failed: %v", err)
		}

		got, err := repo.GetSample(s.ID.String()[:8])
		if err != nil {
			t.Fatalf("GetSample by prefix failed: %v", err)
		}
		if got.ID != s.ID {
			t.Errorf("ID mismatch: got %v, want %v", got.ID, s.ID)
		}

		if _, err := repo.GetSample("zzzzzzzz"); err == nil || !strings.Contains(err.Error(), "not found") {
			t.Errorf("expected not found error, got %v", err)
		}
	})
}

func TestGetSampleAmbiguousPrefix(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		for i := 0; i < 40; i++ {
			if err := repo.CreateSample(models.NewSample("stepCount", float64(i), "count")); err != nil {
				t.Fatalf("CreateSample failed: %v", err)
			}
		}

		// 40 random UUIDs over 16 leading hex digits always collide.
		var ambiguous bool
		for _, c := range "0123456789abcdef" {
			if _, err := repo.GetSample(string(c)); err != nil && strings.Contains(err.Error(), "ambiguous") {
				ambiguous = true
				break
			}
		}
		if !ambiguous {
			t.Error("expected an ambiguous prefix error")
		}
	})
}

func TestListSamplesRangeAndLimit(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		for i := 0; i < 10; i++ {
			s := models.NewSample("bodyMass", 80+float64(i), "kg").WithRecordedAt(base.Add(time.Duration(i) * 24 * time.Hour))
			if err := repo.CreateSample(s); err != nil {
				t.Fatalf("CreateSample failed: %v", err)
			}
		}
		if err := repo.CreateSample(models.NewSample("heartRate", 60, "count/min").WithRecordedAt(base)); err != nil {
			t.Fatalf("CreateSample failed: %v", err)
		}

		ctx := context.Background()

		all, err := repo.ListSamples(ctx, "bodyMass", nil, 0)
		if err != nil {
			t.Fatalf("ListSamples failed: %v", err)
		}
		if len(all) != 10 {
			t.Fatalf("got %d samples, want 10", len(all))
		}
		if all[0].Value != 89 {
			t.Errorf("first sample = %v, want most recent (89)", all[0].Value)
		}

		limited, err := repo.ListSamples(ctx, "bodyMass", nil, 3)
		if err != nil {
			t.Fatalf("ListSamples failed: %v", err)
		}
		if len(limited) != 3 {
			t.Fatalf("got %d samples, want 3", len(limited))
		}
		if limited[2].Value != 87 {
			t.Errorf("last limited sample = %v, want 87", limited[2].Value)
		}

		rng := &models.DateRange{Start: base.Add(2 * 24 * time.Hour), End: base.Add(5 * 24 * time.Hour)}
		ranged, err := repo.ListSamples(ctx, "bodyMass", rng, 0)
		if err != nil {
			t.Fatalf("ListSamples failed: %v", err)
		}
		if len(ranged) != 4 {
			t.Fatalf("got %d samples in range, want 4 (inclusive bounds)", len(ranged))
		}
		for _, s := range ranged {
			if !rng.Contains(s.RecordedAt) {
				t.Errorf("sample at %v outside range", s.RecordedAt)
			}
		}
	})
}

func TestListSamplesCancelled(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		if err := repo.CreateSample(models.NewSample("bodyMass", 80, "kg")); err != nil {
			t.Fatalf("CreateSample failed: %v", err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := repo.ListSamples(ctx, "bodyMass", nil, 0); !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})
}

func TestListRecent(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		s1 := models.NewSample("bodyMass", 82, "kg").WithRecordedAt(base.Add(-2 * time.Hour))
		s2 := models.NewSample("heartRate", 60, "count/min").WithRecordedAt(base)
		s3 := models.NewSample("bodyMass", 81, "kg").WithRecordedAt(base.Add(-1 * time.Hour))
		for _, s := range []*models.Sample{s1, s2, s3} {
			if err := repo.CreateSample(s); err != nil {
				t.Fatalf("CreateSample failed: %v", err)
			}
		}

		all, err := repo.ListRecent(nil, 0)
		if err != nil {
			t.Fatalf("ListRecent failed: %v", err)
		}
		if len(all) != 3 {
			t.Fatalf("got %d samples, want 3", len(all))
		}
		if all[0].ID != s2.ID || all[2].ID != s1.ID {
			t.Error("samples not ordered most recent first")
		}

		metric := models.MetricID("bodyMass")
		filtered, err := repo.ListRecent(&metric, 1)
		if err != nil {
			t.Fatalf("ListRecent failed: %v", err)
		}
		if len(filtered) != 1 || filtered[0].ID != s3.ID {
			t.Errorf("filtered = %v, want only the latest bodyMass sample", filtered)
		}
	})
}

func TestDeleteSample(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		s := models.NewSample("bodyMass", 80, "kg")
		if err := repo.CreateSample(s); err != nil {
			t.Fatalf("CreateSample failed: %v", err)
		}

		if err := repo.DeleteSample(s.ID.String()[:8]); err != nil {
			t.Fatalf("DeleteSample failed: %v", err)
		}
		if _, err := repo.GetSample(s.ID.String()); err == nil {
			t.Error("sample still present after delete")
		}
		if err := repo.DeleteSample(s.ID.String()); err == nil {
			t.Error("expected error deleting a missing sample")
		}
	})
}

func TestCountSamples(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		for _, id := range []models.MetricID{"bodyMass", "bodyMass", "heartRate"} {
			if err := repo.CreateSample(models.NewSample(id, 1, "kg")); err != nil {
				t.Fatalf("CreateSample failed: %v", err)
			}
		}

		counts, err := repo.CountSamples()
		if err != nil {
			t.Fatalf("CountSamples failed: %v", err)
		}
		if counts["bodyMass"] != 2 || counts["heartRate"] != 1 {
			t.Errorf("counts = %v", counts)
		}
	})
}

func TestExportHistory(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		older := models.NewExportRecord(models.FormatCSV, []models.MetricID{"bodyMass"}, 5, 0)
		older.CreatedAt = base
		newer := models.NewExportRecord(models.FormatXLSX, []models.MetricID{"bodyMass", "height"}, 12, 2)
		newer.CreatedAt = base.Add(time.Hour)

		for _, r := range []*models.ExportRecord{older, newer} {
			if err := repo.RecordExport(r); err != nil {
				t.Fatalf("RecordExport failed: %v", err)
			}
		}

		records, err := repo.ListExports(0)
		if err != nil {
			t.Fatalf("ListExports failed: %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("got %d records, want 2", len(records))
		}

		got := records[0]
		if got.ID != newer.ID {
			t.Fatal("history not ordered newest first")
		}
		if got.Format != models.FormatXLSX || got.Rows != 12 || got.Skipped != 2 {
			t.Errorf("record = %+v", got)
		}
		if len(got.Metrics) != 2 || got.Metrics[1] != "height" {
			t.Errorf("metrics = %v", got.Metrics)
		}

		limited, err := repo.ListExports(1)
		if err != nil {
			t.Fatalf("ListExports failed: %v", err)
		}
		if len(limited) != 1 {
			t.Errorf("got %d records, want 1", len(limited))
		}
	})
}

func TestSettings(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		v, err := repo.GetSetting("missing")
		if err != nil {
			t.Fatalf("GetSetting failed: %v", err)
		}
		if v != "" {
			t.Errorf("unset setting = %q, want empty", v)
		}

		if err := repo.SetSetting("usage.times_exported", "1"); err != nil {
			t.Fatalf("SetSetting failed: %v", err)
		}
		if err := repo.SetSetting("usage.times_exported", "2"); err != nil {
			t.Fatalf("SetSetting failed: %v", err)
		}

		v, err = repo.GetSetting("usage.times_exported")
		if err != nil {
			t.Fatalf("GetSetting failed: %v", err)
		}
		if v != "2" {
			t.Errorf("setting = %q, want 2", v)
		}
	})
}

func TestBadgerPersistsAcrossReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "badger")

	store, err := NewBadgerStore(BadgerConfig{Path: dir})
	if err != nil {
		t.Fatalf("NewBadgerStore failed: %v", err)
	}
	s := models.NewSample("bodyMass", 70.5, "kg").WithRecordedAt(base)
	if err := store.CreateSample(s); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := NewBadgerStore(BadgerConfig{Path: dir})
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.GetSample(s.ID.String())
	if err != nil {
		t.Fatalf("GetSample failed: %v", err)
	}
	if got.Value != 70.5 {
		t.Errorf("Value = %v, want 70.5", got.Value)
	}
}

func TestEncodeTimeOrdering(t *testing.T) {
	times := []time.Time{
		time.Date(1960, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Unix(0, 0),
		base,
		base.Add(time.Nanosecond),
	}
	for i := 1; i < len(times); i++ {
		if string(encodeTime(times[i-1])) >= string(encodeTime(times[i])) {
			t.Errorf("encodeTime(%v) does not sort before encodeTime(%v)", times[i-1], times[i])
		}
	}
}
