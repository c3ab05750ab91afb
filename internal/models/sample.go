// ABOUTME: Sample model for time-stamped, unit-bearing health measurements.
// ABOUTME: Defines MetricID, Sample, FetchedData, and UnitPreferences.
package models

import (
	"time"

	"github.com/google/uuid"
)

// MetricID identifies a measurable quantity such as bodyMass or heartRate.
// Valid identifiers are defined by the catalog package.
type MetricID string

// Sample is a single measurement as held by the sample store.
type Sample struct {
	ID         uuid.UUID
	MetricID   MetricID
	Value      float64
	Unit       string
	RecordedAt time.Time
	Source     string
	Notes      *string
	CreatedAt  time.Time
}

// NewSample creates a new Sample with generated UUID and current timestamp.
func NewSample(metric MetricID, value float64, unit string) *Sample {
	now := time.Now()
	return &Sample{
		ID:         uuid.New(),
		MetricID:   metric,
		Value:      value,
		Unit:       unit,
		RecordedAt: now,
		Source:     "healthlens",
		CreatedAt:  now,
	}
}

// WithRecordedAt sets a custom recorded_at timestamp.
func (s *Sample) WithRecordedAt(t time.Time) *Sample {
	s.RecordedAt = t
	return s
}

// WithSource sets the name of the device or app that produced the sample.
func (s *Sample) WithSource(source string) *Sample {
	s.Source = source
	return s
}

// WithNotes sets notes on the sample.
func (s *Sample) WithNotes(notes string) *Sample {
	s.Notes = &notes
	return s
}

// FetchedData holds the samples returned by a store, keyed by metric.
type FetchedData map[MetricID][]*Sample

// Count returns the total number of samples across all metrics.
func (d FetchedData) Count() int {
	n := 0
	for _, samples := range d {
		n += len(samples)
	}
	return n
}

// UnitPreferences maps a metric to the unit symbol it should be rendered in.
type UnitPreferences map[MetricID]string
