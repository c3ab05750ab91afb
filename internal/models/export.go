// ABOUTME: Export request, row, and artifact models.
// ABOUTME: Defines output formats, date ranges, skip diagnostics, and export history records.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// AllFormats lists the supported export formats.
var AllFormats = []Format{FormatCSV, FormatXLSX}

// ParseFormat converts a user-supplied string into a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimPrefix(s, "."))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unknown format: %s (use csv or xlsx)", s)
	}
}

// Extension returns the file extension including the leading dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// MimeType returns the content type served for the format.
func (f Format) MimeType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv; charset=utf-8"
	}
}

// DateRange is an inclusive time window.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Span returns the absolute duration between Start and End.
func (r DateRange) Span() time.Duration {
	d := r.End.Sub(r.Start)
	if d < 0 {
		return -d
	}
	return d
}

// Contains reports whether t falls within the range.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// ExportRequest describes one export.
type ExportRequest struct {
	Metrics []MetricID
	Range   *DateRange
	Format  Format
}

// Row is a sample normalized for output. Time and Number carry the raw
// instant and magnitude for formats with native datetime and number cells.
type Row struct {
	Time     time.Time
	Datetime string
	Category string
	Unit     string
	Value    string
	Number   float64
}

// Skip records a sample left out of an export.
type Skip struct {
	MetricID MetricID
	SampleID uuid.UUID
	Unit     string
	Reason   string
}

// Artifact is a finished export file. The caller owns Path and must move
// or remove it.
type Artifact struct {
	Path          string
	SuggestedName string
	Format        Format
	Rows          int
	Skipped       []Skip
}

// FileName returns the suggested name with the format's extension.
func (a *Artifact) FileName() string {
	return a.SuggestedName + a.Format.Extension()
}

// ExportRecord is an entry in the export history.
type ExportRecord struct {
	ID        uuid.UUID
	Format    Format
	Metrics   []MetricID
	Rows      int
	Skipped   int
	CreatedAt time.Time
}

// NewExportRecord creates a history record for a completed export.
func NewExportRecord(format Format, metrics []MetricID, rows, skipped int) *ExportRecord {
	return &ExportRecord{
		ID:        uuid.New(),
		Format:    format,
		Metrics:   metrics,
		Rows:      rows,
		Skipped:   skipped,
		CreatedAt: time.Now(),
	}
}
