// ABOUTME: HTTP handlers for catalog listing, sample entry, and file exports.
// ABOUTME: Exports stream the finished artifact as an attachment and delete the temp file.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/harperreed/healthlens/internal/catalog"
	"github.com/harperreed/healthlens/internal/export"
	"github.com/harperreed/healthlens/internal/models"
)

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	metrics := s.catalog.All()
	if name := r.URL.Query().Get("group"); name != "" {
		g, ok := s.catalog.Group(name)
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown group: " + name})
			return
		}
		metrics = metrics[:0:0]
		for _, id := range g.Metrics {
			m, _ := s.catalog.Lookup(id)
			metrics = append(metrics, m)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"metrics": metrics,
		"groups":  s.catalog.Groups(),
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var names []string
	for _, v := range q["metrics"] {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
	}
	all, _ := strconv.ParseBool(q.Get("all"))

	ids, err := s.catalog.Select(catalog.Selection{Names: names, Group: q.Get("group"), All: all})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	format := models.FormatCSV
	if f := q.Get("format"); f != "" {
		if format, err = models.ParseFormat(f); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
	}

	rng, err := export.ParseRange(q.Get("from"), q.Get("to"), s.location)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	prefs := s.prefs
	if fallbackOnly, _ := strconv.ParseBool(q.Get("fallback_only")); fallbackOnly {
		prefs = nil
	}

	artifact, err := s.exporter.Run(r.Context(), s.repo, models.ExportRequest{Metrics: ids, Range: rng, Format: format}, prefs)
	if err != nil {
		s.log.Error("export error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	defer os.Remove(artifact.Path)

	f, err := os.Open(artifact.Path)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", format.MimeType())
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": export.SafeFileName(artifact),
	}))
	w.Header().Set("X-Export-Rows", strconv.Itoa(artifact.Rows))
	w.Header().Set("X-Export-Skipped", strconv.Itoa(len(artifact.Skipped)))
	w.WriteHeader(http.StatusOK)

	if _, err := f.WriteTo(w); err != nil {
		s.log.Warn("export stream interrupted", "error", err)
	}
}

func (s *Server) handleExportHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r, 20)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	records, err := s.repo.ListExports(limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	out := make([]exportJSON, 0, len(records))
	for _, rec := range records {
		out = append(out, exportJSON{
			ID:          rec.ID.String(),
			Format:      string(rec.Format),
			Description: s.catalog.Describe(rec.Metrics),
			Rows:        rec.Rows,
			Skipped:     rec.Skipped,
			CreatedAt:   rec.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListSamples(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r, 50)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	var metric *models.MetricID
	if name := r.URL.Query().Get("metric"); name != "" {
		m, ok := s.catalog.Find(name)
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown metric: " + name})
			return
		}
		metric = &m.ID
	}

	samples, err := s.repo.ListRecent(metric, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	out := make([]sampleJSON, 0, len(samples))
	for _, sample := range samples {
		out = append(out, s.toSampleJSON(sample))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateSample(w http.ResponseWriter, r *http.Request) {
	var req createSampleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	sample, err := s.newSample(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := s.repo.CreateSample(sample); err != nil {
		s.log.Error("create sample error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, s.toSampleJSON(sample))
}

func (s *Server) newSample(req createSampleRequest) (*models.Sample, error) {
	if req.Value == nil {
		return nil, errors.New("value is required")
	}
	sample, err := s.catalog.NewSample(req.Metric, *req.Value, req.Unit)
	if err != nil {
		return nil, err
	}
	if req.RecordedAt != "" {
		t, err := export.ParseTime(req.RecordedAt, s.location)
		if err != nil {
			return nil, err
		}
		sample.WithRecordedAt(t)
	}
	if req.Source != "" {
		sample.WithSource(req.Source)
	}
	if req.Notes != "" {
		sample.WithNotes(req.Notes)
	}
	return sample, nil
}

func (s *Server) toSampleJSON(sample *models.Sample) sampleJSON {
	out := sampleJSON{
		ID:         sample.ID.String(),
		Metric:     string(sample.MetricID),
		Name:       s.catalog.Label(sample.MetricID),
		Value:      sample.Value,
		Unit:       sample.Unit,
		RecordedAt: sample.RecordedAt,
		Source:     sample.Source,
	}
	if sample.Notes != nil {
		out.Notes = *sample.Notes
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func parseLimit(r *http.Request, def int) (int, error) {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid limit: %s", v)
	}
	return n, nil
}
