// ABOUTME: Fetch policy limits for exports.
// ABOUTME: Caps samples per metric and ignores date ranges shorter than a minimum span.
package export

import (
	"time"

	"github.com/harperreed/healthlens/internal/models"
)

// Fetch defaults
const (
	DefaultSampleLimit      = 10000
	DefaultMinRange         = 24 * time.Hour
	DefaultFetchConcurrency = 8
)

// Policy bounds how much data one export requests from the store.
type Policy struct {
	// SampleLimit caps samples per metric. Extra samples are truncated.
	SampleLimit int
	// MinRange is the shortest date range honored as a filter.
	MinRange time.Duration
	// Concurrency bounds parallel per-metric fetches.
	Concurrency int
}

// DefaultPolicy returns the default fetch policy.
func DefaultPolicy() Policy {
	return Policy{
		SampleLimit: DefaultSampleLimit,
		MinRange:    DefaultMinRange,
		Concurrency: DefaultFetchConcurrency,
	}
}

// EffectiveRange returns the range to filter by, or nil when r is absent or
// spans less than MinRange. The result always has Start before End.
func (p Policy) EffectiveRange(r *models.DateRange) *models.DateRange {
	if r == nil || r.Span() < p.minRange() {
		return nil
	}
	out := *r
	if out.End.Before(out.Start) {
		out.Start, out.End = out.End, out.Start
	}
	return &out
}

func (p Policy) limit() int {
	if p.SampleLimit <= 0 {
		return DefaultSampleLimit
	}
	return p.SampleLimit
}

func (p Policy) minRange() time.Duration {
	if p.MinRange <= 0 {
		return DefaultMinRange
	}
	return p.MinRange
}

func (p Policy) concurrency() int {
	if p.Concurrency <= 0 {
		return DefaultFetchConcurrency
	}
	return p.Concurrency
}
