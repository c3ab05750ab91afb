// ABOUTME: Data migration between health storage backends.
// ABOUTME: Copies samples, export history, and settings from source to destination.

package storage

import (
	"fmt"
	"os"
)

// Setting keys used by the usage tracker.
const (
	SettingTimesExported       = "usage.times_exported"
	SettingCategoriesExported  = "usage.categories_exported"
	SettingLastPromptedVersion = "usage.last_prompted_version"
)

// SettingKeys lists the settings carried across a migration.
var SettingKeys = []string{
	SettingTimesExported,
	SettingCategoriesExported,
	SettingLastPromptedVersion,
}

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Samples  int
	Exports  int
	Settings int
}

// MigrateData copies all data from src to dst storage.
// The destination should be empty before calling this function.
func MigrateData(src, dst Repository) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	samples, err := src.ListRecent(nil, 0)
	if err != nil {
		return nil, fmt.Errorf("list source samples: %w", err)
	}

	for _, s := range samples {
		if err := dst.CreateSample(s); err != nil {
			return nil, fmt.Errorf("create sample %s: %w", s.ID, err)
		}
		summary.Samples++
	}

	exports, err := src.ListExports(0)
	if err != nil {
		return nil, fmt.Errorf("list source exports: %w", err)
	}

	for _, r := range exports {
		if err := dst.RecordExport(r); err != nil {
			return nil, fmt.Errorf("record export %s: %w", r.ID, err)
		}
		summary.Exports++
	}

	for _, key := range SettingKeys {
		value, err := src.GetSetting(key)
		if err != nil {
			return nil, fmt.Errorf("read setting %s: %w", key, err)
		}
		if value == "" {
			continue
		}
		if err := dst.SetSetting(key, value); err != nil {
			return nil, fmt.Errorf("write setting %s: %w", key, err)
		}
		summary.Settings++
	}

	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
