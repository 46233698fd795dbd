// Package registry owns the current set of loaded datasets and file
// metadata.
//
// A Registry holds one immutable Snapshot at a time. Reload builds the next
// snapshot entirely off to the side (discovery, per-file normalization,
// fingerprint) and installs it with a single pointer swap, so concurrent
// readers always observe a whole snapshot — never a mix of old and new data.
// Readers pin the current snapshot under a read lock and then read it
// lock-free; a slow reload never blocks them.
//
// Per-file normalization failures are logged and skipped; a failed discovery
// (directory gone) aborts the reload and leaves the previous snapshot in
// effect.
//
// The fingerprint is a SHA-256 digest over the (path, mtime) pairs of all
// loaded files plus the sorted dataset names. It changes whenever a file is
// added, removed, or modified, or the dataset set changes, and is served as
// an ETag by the HTTP layer.
package registry
