package api

import (
	"github.com/datadeck/datadeck/internal/dataset"
	"github.com/datadeck/datadeck/internal/registry"
)

// HealthResponse is the payload for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// FileInfo is one loaded file's metadata in GET /datasets.
type FileInfo struct {
	Path         string `json:"path"`
	Type         string `json:"type"`
	LastModified string `json:"last_modified"` // RFC3339
	Size         int64  `json:"size"`
}

// DatasetsResponse is the payload for GET /datasets.
type DatasetsResponse struct {
	Source    string          `json:"source"`
	Type      string          `json:"type"`
	Datasets  []registry.Info `json:"datasets"`
	FileCount int             `json:"file_count"`
	Files     []FileInfo      `json:"files"`
}

// PaginatedData wraps one dataset's records when pagination is requested.
type PaginatedData struct {
	Total    int              `json:"total"`
	Returned int              `json:"returned"`
	Data     []dataset.Record `json:"data"`
}

// ForecastRequest is the body of POST /forecast_demand.
type ForecastRequest struct {
	Filters struct {
		ProductCategory []string `json:"product_category"`
	} `json:"filters"`
}

// errorResponse is the JSON error body. Details is always present and null
// unless a handler attaches structured detail.
type errorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details"`
}
