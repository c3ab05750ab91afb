// ABOUTME: Shared helpers for CLI commands.
// ABOUTME: Builds the exporter from config and formats table output.
package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/harperreed/healthlens/internal/export"
	"github.com/harperreed/healthlens/internal/normalize"
	"github.com/harperreed/healthlens/internal/usage"
)

// newExporter wires the export pipeline from the loaded config.
func newExporter(tracker *usage.Tracker) (*export.Exporter, error) {
	locale, err := cfg.LoadLocale()
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}

	opts := export.Options{
		Catalog:    cat,
		Normalizer: normalize.New(locale, loc),
		Policy:     policy,
		TempDir:    cfg.GetTempDir(),
		Logger:     logger,
	}
	if tracker != nil {
		opts.Reporter = tracker
	}
	return export.New(opts), nil
}

func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	r := []rune(s)
	return string(r[:maxLen-3]) + "..."
}

func padRight(s string, length int) string {
	n := utf8.RuneCountInString(s)
	if n >= length {
		return s
	}
	return s + strings.Repeat(" ", length-n)
}

func shortID(id fmt.Stringer) string {
	return id.String()[:8]
}
