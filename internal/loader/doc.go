// Package loader discovers data files and normalizes them into the uniform
// record model.
//
// Discover(dir) lists the regular files in dir with a recognized extension
// (.xlsx, .xls, .json, .csv — case-insensitive), sorted by path.
//
// LoadFile(path) converts one file into ordered Groups, where a Group's
// Suffix contributes to the derived dataset name:
//   - spreadsheet: one Group per sheet, Suffix = sheet name
//   - JSON object: one Group per top-level key, Suffix = key; non-sequence
//     values are wrapped in a single-element record sequence
//   - JSON array / CSV: a single Group with an empty Suffix (the file stem
//     alone names the dataset)
//
// Failures are classified with the sentinel errors ErrDirectoryNotFound,
// ErrUnsupportedFormat, and ErrParse, all wrapped with file context.
package loader
