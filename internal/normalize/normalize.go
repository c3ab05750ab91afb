// ABOUTME: Unit resolution and sample normalization into export rows.
// ABOUTME: Pure functions; the orchestrator turns errors into skip diagnostics.
package normalize

import (
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/healthlens/internal/models"
	"github.com/harperreed/healthlens/internal/units"
)

// ErrNoCompatibleUnit means a sample could not be expressed in any usable unit.
var ErrNoCompatibleUnit = errors.New("no compatible unit")

// ResolveUnit picks the unit a sample of metric is rendered in. A parseable
// preference is returned as-is. Otherwise the first entry of fallback
// compatible with native wins. The second result is false when nothing fits.
func ResolveUnit(metric models.MetricID, native units.Unit, prefs models.UnitPreferences, fallback []units.Unit) (units.Unit, bool) {
	if sym, ok := prefs[metric]; ok {
		if u, err := units.Parse(sym); err == nil {
			return u, true
		}
	}
	for _, u := range fallback {
		if units.Compatible(native, u) {
			return u, true
		}
	}
	return units.Unit{}, false
}

// Normalizer turns samples into rows using one locale and time zone.
type Normalizer struct {
	locale   *Locale
	location *time.Location
}

// New creates a Normalizer. A nil locale selects the ISO fallback and a
// nil location selects time.Local.
func New(locale *Locale, location *time.Location) *Normalizer {
	if locale == nil {
		locale = ISOLocale()
	}
	if location == nil {
		location = time.Local
	}
	return &Normalizer{locale: locale, location: location}
}

// Locale returns the normalizer's locale.
func (n *Normalizer) Locale() *Locale {
	return n.locale
}

// Location returns the time zone rows are rendered in.
func (n *Normalizer) Location() *time.Location {
	return n.location
}

// Normalize converts s into unit and formats it for output.
func (n *Normalizer) Normalize(s *models.Sample, category string, unit units.Unit) (models.Row, error) {
	if unit.IsZero() {
		return models.Row{}, ErrNoCompatibleUnit
	}

	native, err := units.Parse(s.Unit)
	if err != nil {
		return models.Row{}, fmt.Errorf("%w: %v", ErrNoCompatibleUnit, err)
	}

	value, err := units.Convert(s.Value, native, unit)
	if err != nil {
		return models.Row{}, fmt.Errorf("%w: %v", ErrNoCompatibleUnit, err)
	}

	return models.Row{
		Time:     s.RecordedAt,
		Datetime: n.locale.FormatTime(s.RecordedAt, n.location),
		Category: category,
		Unit:     unit.Symbol,
		Value:    n.locale.FormatNumber(value),
		Number:   value,
	}, nil
}
