// ABOUTME: Builds validated samples from user input for catalog metrics.
// ABOUTME: Shared by the CLI, HTTP API, and MCP tools so every entry point accepts the same samples.
package catalog

import (
	"errors"
	"fmt"
	"math"

	"github.com/harperreed/healthlens/internal/models"
	"github.com/harperreed/healthlens/internal/units"
)

var (
	// ErrUnknownMetric is returned for names the catalog cannot resolve.
	ErrUnknownMetric = errors.New("unknown metric")
	// ErrInvalidValue is returned for NaN and infinite values.
	ErrInvalidValue = errors.New("value must be a finite number")
	// ErrUnitMismatch is returned when a unit cannot measure the metric.
	ErrUnitMismatch = errors.New("unit does not fit metric")
)

// NewSample resolves name, checks value, and builds a sample recorded in
// unit. An empty unit selects the metric's canonical unit. The unit must
// share a dimension with the canonical unit.
func (c *Catalog) NewSample(name string, value float64, unit string) (*models.Sample, error) {
	m, ok := c.Find(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMetric, name)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidValue, value)
	}

	if unit == "" {
		unit = m.Unit
	}
	u, err := units.Parse(unit)
	if err != nil {
		return nil, err
	}
	if canonical, err := units.Parse(m.Unit); err == nil && !units.Compatible(u, canonical) {
		return nil, fmt.Errorf("%w: %s cannot measure %s (expected something like %s)", ErrUnitMismatch, unit, m.Name, m.Unit)
	}

	return models.NewSample(m.ID, value, u.Symbol), nil
}
