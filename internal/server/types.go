// ABOUTME: JSON request and response bodies for the HTTP API.
// ABOUTME: Keeps wire field names independent of the storage models.
package server

import "time"

type createSampleRequest struct {
	Metric     string   `json:"metric"`
	Value      *float64 `json:"value"`
	Unit       string   `json:"unit,omitempty"`
	RecordedAt string   `json:"recorded_at,omitempty"`
	Source     string   `json:"source,omitempty"`
	Notes      string   `json:"notes,omitempty"`
}

type sampleJSON struct {
	ID         string    `json:"id"`
	Metric     string    `json:"metric"`
	Name       string    `json:"name"`
	Value      float64   `json:"value"`
	Unit       string    `json:"unit"`
	RecordedAt time.Time `json:"recorded_at"`
	Source     string    `json:"source,omitempty"`
	Notes      string    `json:"notes,omitempty"`
}

type exportJSON struct {
	ID          string    `json:"id"`
	Format      string    `json:"format"`
	Description string    `json:"description"`
	Rows        int       `json:"rows"`
	Skipped     int       `json:"skipped"`
	CreatedAt   time.Time `json:"created_at"`
}
