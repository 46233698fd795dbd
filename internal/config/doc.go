// Package config loads the datadeck configuration.
//
// Config fields (yaml key / env override / default):
//   - DataDir       — data_dir / DATA_DIR / "data-docs"
//   - Host          — host / HOST / "0.0.0.0"
//   - Port          — port / PORT / 8000
//   - Watch         — watch / WATCH_FILE / false
//   - WatchDebounce — watch_debounce / WATCH_DEBOUNCE_MS / 500ms
//   - CORS          — cors / ENABLE_CORS / false
//
// Load(path) starts from defaults, overlays the YAML file when a path is
// given, then overlays environment variables, then validates. The
// environment always wins so containerized deployments need no file at all.
//
// ValidateDataDir checks the startup requirements on the data directory:
// it must exist, be a directory, and contain at least one recognized file.
// Callers treat a violation as fatal before serving.
package config
