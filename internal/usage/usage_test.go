// ABOUTME: Tests for the usage tracker.
// ABOUTME: Covers counters, history recording, and the review prompt thresholds.
package usage

import (
	"context"
	"errors"
	"testing"

	"github.com/harperreed/healthlens/internal/export"
	"github.com/harperreed/healthlens/internal/models"
	"github.com/harperreed/healthlens/internal/storage"
)

func setupTracker(t *testing.T) (*Tracker, *storage.BadgerStore) {
	t.Helper()

	store, err := storage.NewBadgerStore(storage.BadgerConfig{InMemory: true})
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return NewTracker(store, nil), store
}

func summary(n int) export.Summary {
	metrics := make([]models.MetricID, n)
	for i := range metrics {
		metrics[i] = models.MetricID("metric" + string(rune('a'+i)))
	}
	return export.Summary{Format: models.FormatCSV, Metrics: metrics, Rows: 3}
}

func TestExportCompletedUpdatesCounters(t *testing.T) {
	tracker, store := setupTracker(t)
	ctx := context.Background()

	if err := tracker.ExportCompleted(ctx, summary(2)); err != nil {
		t.Fatalf("ExportCompleted failed: %v", err)
	}
	if err := tracker.ExportCompleted(ctx, summary(3)); err != nil {
		t.Fatalf("ExportCompleted failed: %v", err)
	}

	stats, err := tracker.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TimesExported != 2 || stats.CategoriesExported != 5 {
		t.Errorf("stats = %+v, want 2 exports and 5 categories", stats)
	}

	history, err := store.ListExports(0)
	if err != nil {
		t.Fatalf("ListExports failed: %v", err)
	}
	if len(history) != 2 {
		t.Errorf("got %d history records, want 2", len(history))
	}
}

func TestShouldPromptReview(t *testing.T) {
	tests := []struct {
		name    string
		exports []int
		want    bool
	}{
		{"no exports", nil, false},
		{"one small export", []int{1}, false},
		{"two exports", []int{1, 1}, true},
		{"one wide export", []int{10}, true},
		{"one nearly wide export", []int{9}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker, _ := setupTracker(t)
			for _, n := range tt.exports {
				if err := tracker.ExportCompleted(context.Background(), summary(n)); err != nil {
					t.Fatalf("ExportCompleted failed: %v", err)
				}
			}

			got, err := tracker.ShouldPromptReview("1.0.0")
			if err != nil {
				t.Fatalf("ShouldPromptReview failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("ShouldPromptReview = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPromptOncePerVersion(t *testing.T) {
	tracker, _ := setupTracker(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := tracker.ExportCompleted(ctx, summary(1)); err != nil {
			t.Fatalf("ExportCompleted failed: %v", err)
		}
	}

	if err := tracker.MarkPrompted("1.0.0"); err != nil {
		t.Fatalf("MarkPrompted failed: %v", err)
	}
	if got, _ := tracker.ShouldPromptReview("1.0.0"); got {
		t.Error("prompted twice for the same version")
	}
	if got, _ := tracker.ShouldPromptReview("1.1.0"); !got {
		t.Error("expected prompt for a new version")
	}
}

func TestExportCompletedCancelled(t *testing.T) {
	tracker, _ := setupTracker(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := tracker.ExportCompleted(ctx, summary(1)); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	stats, _ := tracker.Stats()
	if stats.TimesExported != 0 {
		t.Error("counter bumped for a cancelled export")
	}
}

func TestCorruptCounterResets(t *testing.T) {
	tracker, store := setupTracker(t)

	if err := store.SetSetting(storage.SettingTimesExported, "garbage"); err != nil {
		t.Fatal(err)
	}
	if err := tracker.ExportCompleted(context.Background(), summary(1)); err != nil {
		t.Fatalf("ExportCompleted failed: %v", err)
	}

	stats, err := tracker.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TimesExported != 1 {
		t.Errorf("TimesExported = %d, want 1", stats.TimesExported)
	}
}
