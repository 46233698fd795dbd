// Package api implements the HTTP surface of datadeck.
//
// New(registry, cors) returns an http.Handler that serves:
//
//	GET  /health           — {"status":"ok"}
//	GET  /datasets         — source summary, dataset infos, per-file metadata
//	GET  /data             — dataset records; ?name= (repeatable), ?limit=, ?offset=
//	POST /forecast_demand  — mock demand forecast per product category
//
// /data response shape depends on the request:
//   - exactly one dataset and no pagination params → bare record array
//   - otherwise → object keyed by dataset name; with pagination each value
//     is {total, returned, data}, without it the bare record array
//
// Unknown names yield 404 with {requested, available} detail; negative or
// malformed limit/offset yield 400. /datasets and /data set ETag (registry
// fingerprint) and Last-Modified (most recent file mtime) when data is
// loaded.
//
// A recovery middleware turns panics into a generic 500 with no internal
// detail; a config-gated CORS middleware allows all origins. JSON types are
// defined in types.go. No external HTTP framework is used.
package api
