// Package dataset defines the uniform in-memory data model shared by the
// loader, registry, and HTTP layer.
//
// Core types:
//   - Record — one row of a dataset: an insertion-ordered field map. Values
//     are restricted to nil, bool, int64, float64, and string (timestamps are
//     rendered as RFC 3339 strings) by NormalizeValue.
//   - Dataset — a named, ordered sequence of Records derived from one logical
//     unit of a source file (a spreadsheet sheet, a JSON key, or a whole file).
//   - FileRecord — metadata for one successfully loaded source file.
//   - FileType — detected source format (spreadsheet | json | csv).
//
// Field order within a Record follows source column order, so JSON responses
// round-trip columns in the order they appear on disk.
package dataset
