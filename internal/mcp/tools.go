// ABOUTME: MCP tool implementations for healthlens.
// ABOUTME: Provides export, catalog listing, and sample entry tools.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/healthlens/internal/catalog"
	"github.com/harperreed/healthlens/internal/export"
	"github.com/harperreed/healthlens/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// export_health_data
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "export_health_data",
		Description: "Export selected health metrics to a CSV or XLSX file",
	}, s.handleExport)

	// list_metrics
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_metrics",
		Description: "List exportable metrics with their units and stored sample counts",
	}, s.handleListMetrics)

	// add_sample
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_sample",
		Description: "Record a health sample for a catalog metric",
	}, s.handleAddSample)

	// list_samples
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_samples",
		Description: "List recent samples, optionally filtered by metric",
	}, s.handleListSamples)
}

// Tool input/output types

type exportInput struct {
	Metrics      []string `json:"metrics,omitempty" jsonschema:"metric ids or display names to export"`
	Group        string   `json:"group,omitempty" jsonschema:"export every metric in this category group"`
	All          bool     `json:"all,omitempty" jsonschema:"export the whole catalog"`
	Format       string   `json:"format,omitempty" jsonschema:"csv (default) or xlsx"`
	From         string   `json:"from,omitempty" jsonschema:"start of the date range (YYYY-MM-DD or RFC 3339)"`
	To           string   `json:"to,omitempty" jsonschema:"end of the date range (YYYY-MM-DD or RFC 3339)"`
	Name         string   `json:"name,omitempty" jsonschema:"output file name; defaults to one derived from the selection"`
	FallbackOnly bool     `json:"fallback_only,omitempty" jsonschema:"ignore preferred units and use the fallback order"`
}

type exportOutput struct {
	Path        string `json:"path"`
	Format      string `json:"format"`
	Rows        int    `json:"rows"`
	Skipped     int    `json:"skipped"`
	Description string `json:"description"`
	Message     string `json:"message"`
}

type listMetricsInput struct {
	Group string `json:"group,omitempty" jsonschema:"only list metrics in this category group"`
}

type metricInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Unit    string `json:"unit"`
	Samples int    `json:"samples"`
}

type listMetricsOutput struct {
	Metrics []metricInfo `json:"metrics"`
	Groups  []string     `json:"groups"`
}

type addSampleInput struct {
	Metric     string  `json:"metric" jsonschema:"metric id or display name"`
	Value      float64 `json:"value" jsonschema:"the measured value"`
	Unit       string  `json:"unit,omitempty" jsonschema:"unit symbol; defaults to the metric's canonical unit"`
	RecordedAt string  `json:"recorded_at,omitempty" jsonschema:"timestamp (RFC 3339 or YYYY-MM-DD HH:MM); defaults to now"`
	Source     string  `json:"source,omitempty" jsonschema:"device or app that produced the value"`
	Notes      string  `json:"notes,omitempty" jsonschema:"optional notes"`
}

type sampleInfo struct {
	ID         string  `json:"id"`
	Metric     string  `json:"metric"`
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Unit       string  `json:"unit"`
	RecordedAt string  `json:"recorded_at"`
	Source     string  `json:"source,omitempty"`
	Notes      string  `json:"notes,omitempty"`
}

type sampleOutput struct {
	Sample  sampleInfo `json:"sample"`
	Message string     `json:"message"`
}

type listSamplesInput struct {
	Metric string `json:"metric,omitempty" jsonschema:"filter by metric id or display name"`
	Limit  int    `json:"limit,omitempty" jsonschema:"max results (default 20)"`
}

type listSamplesOutput struct {
	Samples []sampleInfo `json:"samples"`
	Message string       `json:"message,omitempty"`
}

// Tool handlers

func (s *Server) handleExport(ctx context.Context, req *mcp.CallToolRequest, input exportInput) (*mcp.CallToolResult, exportOutput, error) {
	ids, err := s.catalog.Select(catalog.Selection{Names: input.Metrics, Group: input.Group, All: input.All})
	if err != nil {
		return nil, exportOutput{}, err
	}

	format := models.FormatCSV
	if input.Format != "" {
		if format, err = models.ParseFormat(input.Format); err != nil {
			return nil, exportOutput{}, err
		}
	}

	rng, err := export.ParseRange(input.From, input.To, s.location)
	if err != nil {
		return nil, exportOutput{}, err
	}

	prefs := s.prefs
	if input.FallbackOnly {
		prefs = nil
	}

	artifact, err := s.exporter.Run(ctx, s.repo, models.ExportRequest{Metrics: ids, Range: rng, Format: format}, prefs)
	if err != nil {
		return nil, exportOutput{}, fmt.Errorf("export failed: %w", err)
	}

	path, err := export.Save(artifact, s.outputDir, input.Name)
	if err != nil {
		return nil, exportOutput{}, err
	}

	s.logger.Info("export saved", "path", path, "rows", artifact.Rows)

	return nil, exportOutput{
		Path:        path,
		Format:      string(format),
		Rows:        artifact.Rows,
		Skipped:     len(artifact.Skipped),
		Description: s.catalog.Describe(ids),
		Message:     fmt.Sprintf("Exported %d rows to %s", artifact.Rows, path),
	}, nil
}

func (s *Server) handleListMetrics(ctx context.Context, req *mcp.CallToolRequest, input listMetricsInput) (*mcp.CallToolResult, listMetricsOutput, error) {
	metrics := s.catalog.All()
	if input.Group != "" {
		ids, err := s.catalog.Select(catalog.Selection{Group: input.Group})
		if err != nil {
			return nil, listMetricsOutput{}, err
		}
		metrics = metrics[:0:0]
		for _, id := range ids {
			m, _ := s.catalog.Lookup(id)
			metrics = append(metrics, m)
		}
	}

	counts, err := s.repo.CountSamples()
	if err != nil {
		return nil, listMetricsOutput{}, fmt.Errorf("failed to count samples: %w", err)
	}

	out := listMetricsOutput{
		Metrics: make([]metricInfo, 0, len(metrics)),
		Groups:  make([]string, 0, len(s.catalog.Groups())),
	}
	for _, m := range metrics {
		out.Metrics = append(out.Metrics, metricInfo{
			ID:      string(m.ID),
			Name:    m.Name,
			Unit:    m.Unit,
			Samples: counts[m.ID],
		})
	}
	for _, g := range s.catalog.Groups() {
		out.Groups = append(out.Groups, g.Name)
	}
	return nil, out, nil
}

func (s *Server) handleAddSample(ctx context.Context, req *mcp.CallToolRequest, input addSampleInput) (*mcp.CallToolResult, sampleOutput, error) {
	sample, err := s.catalog.NewSample(input.Metric, input.Value, input.Unit)
	if err != nil {
		return nil, sampleOutput{}, err
	}
	if input.RecordedAt != "" {
		t, err := export.ParseTime(input.RecordedAt, s.location)
		if err != nil {
			return nil, sampleOutput{}, err
		}
		sample.WithRecordedAt(t)
	}
	if input.Source != "" {
		sample.WithSource(input.Source)
	}
	if input.Notes != "" {
		sample.WithNotes(input.Notes)
	}

	if err := s.repo.CreateSample(sample); err != nil {
		return nil, sampleOutput{}, fmt.Errorf("failed to create sample: %w", err)
	}

	return nil, sampleOutput{
		Sample:  s.toSampleInfo(sample),
		Message: fmt.Sprintf("Added %s: %.2f %s (ID: %s)", s.catalog.Label(sample.MetricID), sample.Value, sample.Unit, sample.ID.String()[:8]),
	}, nil
}

func (s *Server) handleListSamples(ctx context.Context, req *mcp.CallToolRequest, input listSamplesInput) (*mcp.CallToolResult, listSamplesOutput, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	var metric *models.MetricID
	if input.Metric != "" {
		m, ok := s.catalog.Find(input.Metric)
		if !ok {
			return nil, listSamplesOutput{}, fmt.Errorf("unknown metric: %s", input.Metric)
		}
		metric = &m.ID
	}

	samples, err := s.repo.ListRecent(metric, input.Limit)
	if err != nil {
		return nil, listSamplesOutput{}, fmt.Errorf("failed to list samples: %w", err)
	}

	out := listSamplesOutput{Samples: make([]sampleInfo, 0, len(samples))}
	for _, sample := range samples {
		out.Samples = append(out.Samples, s.toSampleInfo(sample))
	}
	if len(samples) == 0 {
		out.Message = "No samples found."
	}
	return nil, out, nil
}

func (s *Server) toSampleInfo(sample *models.Sample) sampleInfo {
	info := sampleInfo{
		ID:         sample.ID.String(),
		Metric:     string(sample.MetricID),
		Name:       s.catalog.Label(sample.MetricID),
		Value:      sample.Value,
		Unit:       sample.Unit,
		RecordedAt: sample.RecordedAt.In(s.location).Format(time.RFC3339),
		Source:     sample.Source,
	}
	if sample.Notes != nil {
		info.Notes = *sample.Notes
	}
	return info
}
