package api

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/datadeck/datadeck/internal/dataset"
	"github.com/datadeck/datadeck/internal/forecast"
	"github.com/datadeck/datadeck/internal/registry"
)

// Handler serves all datadeck HTTP endpoints. It only ever calls read
// operations on the registry.
type Handler struct {
	reg *registry.Registry
	mux *http.ServeMux
}

// New creates a Handler wired to reg and registers all routes. When cors is
// true, permissive CORS headers are attached to every response.
func New(reg *registry.Registry, cors bool) http.Handler {
	h := &Handler{reg: reg, mux: http.NewServeMux()}

	h.mux.HandleFunc("/health", h.health)
	h.mux.HandleFunc("/datasets", h.datasets)
	h.mux.HandleFunc("/data", h.data)
	h.mux.HandleFunc("/forecast_demand", h.forecastDemand)

	var out http.Handler = h.mux
	if cors {
		out = withCORS(out)
	}
	return withRecovery(out)
}

// --- route handlers ---------------------------------------------------------

// health returns GET /health — a static liveness probe.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}
	jsonResp(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// datasets returns GET /datasets — metadata about every loaded dataset and
// source file.
func (h *Handler) datasets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	summary := h.reg.FileSummary()
	files := make([]FileInfo, 0, len(summary.Files))
	for _, f := range summary.Files {
		files = append(files, FileInfo{
			Path:         f.Path,
			Type:         string(f.Type),
			LastModified: f.LastModified.UTC().Format(time.RFC3339),
			Size:         f.Size,
		})
	}

	h.setCacheHeaders(w)
	jsonResp(w, http.StatusOK, DatasetsResponse{
		Source:    summary.Source,
		Type:      summary.Type,
		Datasets:  h.reg.DatasetInfo(),
		FileCount: summary.FileCount,
		Files:     files,
	})
}

// data returns GET /data — records from one or more datasets, optionally
// paginated. See the package doc for the response-shape rules.
func (h *Handler) data(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	q := r.URL.Query()

	limit, hasLimit, err := queryInt(q, "limit")
	if err != nil {
		jsonErr(w, http.StatusBadRequest, "Limit must be a non-negative integer", nil)
		return
	}
	offset, hasOffset, err := queryInt(q, "offset")
	if err != nil {
		jsonErr(w, http.StatusBadRequest, "Offset must be a non-negative integer", nil)
		return
	}

	available := h.reg.Names()
	requested := q["name"]

	if len(requested) > 0 {
		known := make(map[string]bool, len(available))
		for _, name := range available {
			known[name] = true
		}
		var unknown []string
		for _, name := range requested {
			if !known[name] {
				unknown = append(unknown, name)
			}
		}
		if len(unknown) > 0 {
			jsonErr(w, http.StatusNotFound, "Dataset not found", map[string]any{
				"requested": unknown,
				"available": available,
			})
			return
		}
	}

	targets := requested
	if len(targets) == 0 {
		targets = available
	}
	paginated := hasLimit || hasOffset

	// One dataset, no pagination: the body is the bare record array.
	if len(targets) == 1 && !paginated {
		records, ok := h.reg.Dataset(targets[0])
		if !ok {
			// Reload swapped the dataset away between validation and read.
			jsonErr(w, http.StatusNotFound, "Dataset not found", nil)
			return
		}
		h.setCacheHeaders(w)
		jsonResp(w, http.StatusOK, nonNil(records))
		return
	}

	body := make(map[string]any, len(targets))
	for name, records := range h.reg.Datasets(targets) {
		if !paginated {
			body[name] = nonNil(records)
			continue
		}
		total := len(records)
		start := offset
		if start > total {
			start = total
		}
		end := total
		if hasLimit && start+limit < total {
			end = start + limit
		}
		page := records[start:end]
		body[name] = PaginatedData{Total: total, Returned: len(page), Data: nonNil(page)}
	}

	h.setCacheHeaders(w)
	jsonResp(w, http.StatusOK, body)
}

// forecastDemand handles POST /forecast_demand with mock forecast rows.
func (h *Handler) forecastDemand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	var req ForecastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonErr(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	jsonResp(w, http.StatusOK, forecast.Demand(req.Filters.ProductCategory))
}

// --- helpers ----------------------------------------------------------------

// setCacheHeaders attaches ETag and Last-Modified from the current registry
// state, when anything is loaded.
func (h *Handler) setCacheHeaders(w http.ResponseWriter) {
	if fp, ok := h.reg.Fingerprint(); ok {
		w.Header().Set("ETag", `"`+fp+`"`)
	}
	if lm, ok := h.reg.LastModified(); ok {
		w.Header().Set("Last-Modified", lm.UTC().Format(http.TimeFormat))
	}
}

// queryInt reads an optional non-negative integer query parameter. present
// is false when the parameter was absent; err is set for malformed or
// negative values.
func queryInt(q url.Values, key string) (value int, present bool, err error) {
	if !q.Has(key) {
		return 0, false, nil
	}
	n, err := strconv.Atoi(q.Get(key))
	if err != nil {
		return 0, true, err
	}
	if n < 0 {
		return 0, true, strconv.ErrRange
	}
	return n, true, nil
}

// nonNil guards against marshalling a nil record slice as JSON null.
func nonNil(records []dataset.Record) []dataset.Record {
	if records == nil {
		return []dataset.Record{}
	}
	return records
}

func jsonResp(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string, details any) {
	jsonResp(w, code, errorResponse{Error: msg, Details: details})
}
