// ABOUTME: MCP resource implementations for healthlens.
// ABOUTME: Provides healthlens://catalog and healthlens://summary resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	catalogURI = "healthlens://catalog"
	summaryURI = "healthlens://summary"
)

func (s *Server) registerResources() {
	// healthlens://catalog - Every exportable metric and category group
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         catalogURI,
		Name:        "Metric Catalog",
		Description: "Exportable metrics with display names, canonical units, and groups",
		MIMEType:    "application/json",
	}, s.handleCatalogResource)

	// healthlens://summary - Stored sample counts and recent exports
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         summaryURI,
		Name:        "Health Data Summary",
		Description: "Sample counts per metric and the most recent exports",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
}

// Resource handlers

func (s *Server) handleCatalogResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	result := map[string]interface{}{
		"metrics": s.catalog.All(),
		"groups":  s.catalog.Groups(),
	}
	return jsonResource(catalogURI, result)
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	counts, err := s.repo.CountSamples()
	if err != nil {
		return nil, fmt.Errorf("failed to count samples: %w", err)
	}

	exports, err := s.repo.ListExports(10)
	if err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}

	byMetric := make(map[string]interface{}, len(counts))
	total := 0
	for id, n := range counts {
		byMetric[string(id)] = map[string]interface{}{
			"name":    s.catalog.Label(id),
			"samples": n,
		}
		total += n
	}

	recent := make([]map[string]interface{}, 0, len(exports))
	for _, r := range exports {
		recent = append(recent, map[string]interface{}{
			"format":     r.Format,
			"metrics":    s.catalog.Describe(r.Metrics),
			"rows":       r.Rows,
			"skipped":    r.Skipped,
			"created_at": r.CreatedAt.Format(time.RFC3339),
		})
	}

	result := map[string]interface{}{
		"generated_at":   time.Now().Format(time.RFC3339),
		"metrics":        byMetric,
		"recent_exports": recent,
		"summary": map[string]int{
			"total_samples":  total,
			"metric_count":   len(counts),
			"recent_exports": len(exports),
		},
	}
	return jsonResource(summaryURI, result)
}

func jsonResource(uri string, v interface{}) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
