// ABOUTME: Export orchestrator that fetches, normalizes, and writes samples.
// ABOUTME: Produces a temporary artifact and reports completed exports.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"github.com/harperreed/healthlens/internal/catalog"
	"github.com/harperreed/healthlens/internal/models"
	"github.com/harperreed/healthlens/internal/normalize"
	"github.com/harperreed/healthlens/internal/units"
	"golang.org/x/sync/errgroup"
)

// Source supplies samples for one metric. Implementations must honor
// limit and the optional range, and should abort when ctx is cancelled.
type Source interface {
	ListSamples(ctx context.Context, metric models.MetricID, rng *models.DateRange, limit int) ([]*models.Sample, error)
}

// Summary describes a completed export.
type Summary struct {
	Format  models.Format
	Metrics []models.MetricID
	Rows    int
	Skipped int
}

// Reporter is notified once per completed export.
type Reporter interface {
	ExportCompleted(ctx context.Context, s Summary) error
}

// Options configures an Exporter. Zero values select defaults.
type Options struct {
	Catalog    *catalog.Catalog
	Normalizer *normalize.Normalizer
	Fallback   []units.Unit
	Policy     Policy
	Headers    [4]string
	TempDir    string
	Reporter   Reporter
	Logger     *slog.Logger
}

// Exporter turns export requests into artifacts.
type Exporter struct {
	catalog    *catalog.Catalog
	normalizer *normalize.Normalizer
	fallback   []units.Unit
	policy     Policy
	headers    [4]string
	tempDir    string
	reporter   Reporter
	logger     *slog.Logger
}

// New creates an Exporter.
func New(opts Options) *Exporter {
	e := &Exporter{
		catalog:    opts.Catalog,
		normalizer: opts.Normalizer,
		fallback:   opts.Fallback,
		policy:     opts.Policy,
		headers:    opts.Headers,
		tempDir:    opts.TempDir,
		reporter:   opts.Reporter,
		logger:     opts.Logger,
	}
	if e.catalog == nil {
		e.catalog = catalog.Default()
	}
	if e.normalizer == nil {
		e.normalizer = normalize.New(nil, nil)
	}
	if e.fallback == nil {
		e.fallback = units.DefaultFallback()
	}
	if e.policy == (Policy{}) {
		e.policy = DefaultPolicy()
	}
	if e.headers == ([4]string{}) {
		e.headers = DefaultHeaders
	}
	if e.tempDir == "" {
		e.tempDir = os.TempDir()
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	return e
}

// Catalog returns the catalog used for labels and file names.
func (e *Exporter) Catalog() *catalog.Catalog {
	return e.catalog
}

// Policy returns the fetch policy.
func (e *Exporter) Policy() Policy {
	return e.policy
}

// Run fetches the requested metrics from src and exports them.
func (e *Exporter) Run(ctx context.Context, src Source, req models.ExportRequest, prefs models.UnitPreferences) (*models.Artifact, error) {
	data, err := e.Fetch(ctx, src, req.Metrics, req.Range)
	if err != nil {
		return nil, err
	}
	return e.Export(ctx, req, data, prefs)
}

// Fetch queries every metric concurrently and waits for all of them.
// Ranges shorter than the policy minimum are dropped and results are
// capped at the policy sample limit.
func (e *Exporter) Fetch(ctx context.Context, src Source, metrics []models.MetricID, rng *models.DateRange) (models.FetchedData, error) {
	effective := e.policy.EffectiveRange(rng)
	if rng != nil && effective == nil {
		e.logger.Debug("date range shorter than minimum, fetching full history",
			"span", rng.Span(), "min", e.policy.minRange())
	}

	ids := dedupe(metrics)
	limit := e.policy.limit()
	results := make([][]*models.Sample, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.policy.concurrency())
	for i, id := range ids {
		g.Go(func() error {
			samples, err := src.ListSamples(gctx, id, effective, limit)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", id, err)
			}
			if len(samples) > limit {
				e.logger.Debug("truncating samples", "metric", id, "count", len(samples), "limit", limit)
				samples = samples[:limit]
			}
			results[i] = samples
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	data := make(models.FetchedData, len(ids))
	for i, id := range ids {
		data[id] = results[i]
	}
	return data, nil
}

// Rows normalizes every sample in data. Samples without a usable unit are
// returned as skips. Rows are ordered by category label, then timestamp.
func (e *Exporter) Rows(data models.FetchedData, prefs models.UnitPreferences) ([]models.Row, []models.Skip) {
	ids := make([]models.MetricID, 0, len(data))
	for id := range data {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var rows []models.Row
	var skips []models.Skip

	for _, id := range ids {
		label := e.catalog.Label(id)
		for _, s := range data[id] {
			row, err := e.normalizeSample(id, s, label, prefs)
			if err != nil {
				skip := models.Skip{MetricID: id, SampleID: s.ID, Unit: s.Unit, Reason: err.Error()}
				skips = append(skips, skip)
				e.logger.Warn("skipping sample", "metric", id, "sample", s.ID, "unit", s.Unit, "reason", skip.Reason)
				continue
			}
			rows = append(rows, row)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Category != rows[j].Category {
			return rows[i].Category < rows[j].Category
		}
		return rows[i].Time.Before(rows[j].Time)
	})

	return rows, skips
}

func (e *Exporter) normalizeSample(id models.MetricID, s *models.Sample, label string, prefs models.UnitPreferences) (models.Row, error) {
	native, err := units.Parse(s.Unit)
	if err != nil {
		return models.Row{}, fmt.Errorf("%w: %v", ErrNoCompatibleUnit, err)
	}
	unit, ok := normalize.ResolveUnit(id, native, prefs, e.fallback)
	if !ok {
		return models.Row{}, fmt.Errorf("%w for %s", ErrNoCompatibleUnit, s.Unit)
	}
	return e.normalizer.Normalize(s, label, unit)
}

// Export writes data in the requested format to a temporary file. The
// file is removed on any error, so a returned artifact is always complete.
func (e *Exporter) Export(ctx context.Context, req models.ExportRequest, data models.FetchedData, prefs models.UnitPreferences) (*models.Artifact, error) {
	w, err := e.writer(req.Format)
	if err != nil {
		return nil, err
	}

	rows, skips := e.Rows(data, prefs)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(e.tempDir, "HealthData"+uuid.NewString()+req.Format.Extension())
	if err := e.writeFile(path, w, rows); err != nil {
		_ = os.Remove(path)
		return nil, err
	}

	artifact := &models.Artifact{
		Path:          path,
		SuggestedName: SuggestedFileName(e.catalog, req.Metrics),
		Format:        req.Format,
		Rows:          len(rows),
		Skipped:       skips,
	}

	e.logger.Info("export complete",
		"format", req.Format, "path", path, "rows", len(rows), "skipped", len(skips))

	if e.reporter != nil {
		summary := Summary{
			Format:  req.Format,
			Metrics: dedupe(req.Metrics),
			Rows:    len(rows),
			Skipped: len(skips),
		}
		if err := e.reporter.ExportCompleted(ctx, summary); err != nil {
			e.logger.Warn("failed to record export", "error", err)
		}
	}

	return artifact, nil
}

func (e *Exporter) writeFile(path string, w Writer, rows []models.Row) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFileWrite, err)
	}

	if err := w.Write(f, rows, e.headers); err != nil {
		_ = f.Close()
		if errors.Is(err, ErrWorkbookCreate) || errors.Is(err, ErrWorksheetCreate) || errors.Is(err, ErrFileWrite) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrFileWrite, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close: %v", ErrFileWrite, err)
	}
	return nil
}

func (e *Exporter) writer(format models.Format) (Writer, error) {
	switch format {
	case models.FormatCSV:
		return CSVWriter{}, nil
	case models.FormatXLSX:
		locale := e.normalizer.Locale()
		return &XLSXWriter{
			SheetName:    DefaultSheetName,
			DateFormat:   locale.ExcelDateFormat,
			NumberFormat: locale.ExcelNumberFormat,
			Location:     e.normalizer.Location(),
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func dedupe(ids []models.MetricID) []models.MetricID {
	seen := make(map[models.MetricID]bool, len(ids))
	out := make([]models.MetricID, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
