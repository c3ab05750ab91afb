// ABOUTME: Tests for building validated samples from user input.
// ABOUTME: Covers unit defaults, aliases, and every rejection path.
package catalog

import (
	"errors"
	"math"
	"testing"

	"github.com/harperreed/healthlens/internal/units"
)

func TestNewSample(t *testing.T) {
	c := Default()

	tests := []struct {
		name     string
		metric   string
		unit     string
		wantID   string
		wantUnit string
	}{
		{"canonical unit by default", "bodyMass", "", "bodyMass", "kg"},
		{"display name", "Weight", "lb", "bodyMass", "lb"},
		{"compatible unit", "height", "in", "height", "in"},
		{"unit alias", "heartRate", "bpm", "heartRate", "count/min"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := c.NewSample(tt.metric, 70.5, tt.unit)
			if err != nil {
				t.Fatalf("NewSample failed: %v", err)
			}
			if string(s.MetricID) != tt.wantID || s.Unit != tt.wantUnit || s.Value != 70.5 {
				t.Errorf("got %s %v %s, want %s 70.5 %s", s.MetricID, s.Value, s.Unit, tt.wantID, tt.wantUnit)
			}
		})
	}
}

func TestNewSampleRejects(t *testing.T) {
	c := Default()

	tests := []struct {
		name    string
		metric  string
		value   float64
		unit    string
		wantErr error
	}{
		{"unknown metric", "notAMetric", 1, "", ErrUnknownMetric},
		{"positive infinity", "bodyMass", math.Inf(1), "", ErrInvalidValue},
		{"negative infinity", "bodyMass", math.Inf(-1), "lb", ErrInvalidValue},
		{"NaN", "bodyMass", math.NaN(), "", ErrInvalidValue},
		{"unknown unit", "bodyMass", 1, "furlong", units.ErrUnknownUnit},
		{"rate for a mass", "bodyMass", 70, "count/min", ErrUnitMismatch},
		{"length for a mass", "bodyMass", 1, "m", ErrUnitMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := c.NewSample(tt.metric, tt.value, tt.unit)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if s != nil {
				t.Error("expected nil sample on error")
			}
		})
	}
}
