package registry

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/datadeck/datadeck/internal/dataset"
	"github.com/datadeck/datadeck/internal/loader"
)

// Info describes one dataset for listings.
type Info struct {
	Name    string `json:"name"`
	Records int    `json:"records"`
}

// FileSummary describes the loaded source files as a whole.
type FileSummary struct {
	Source       string
	Type         string
	FileCount    int
	Files        []dataset.FileRecord
	LastModified time.Time // zero when no files are loaded
}

// snapshot is one immutable view of all loaded state. It is never mutated
// after install; Reload builds a fresh one and swaps the pointer.
type snapshot struct {
	datasets     map[string][]dataset.Record
	names        []string // dataset names in load order
	files        []dataset.FileRecord
	fingerprint  string
	lastModified time.Time
}

func emptySnapshot() *snapshot {
	return &snapshot{datasets: map[string][]dataset.Record{}}
}

// Registry is the concurrent-safe holder of the current snapshot. All read
// methods are safe against a concurrent Reload; Reload calls are serialized
// against each other.
type Registry struct {
	mu       sync.RWMutex // guards the snap pointer
	reloadMu sync.Mutex   // serializes writers
	snap     *snapshot
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{snap: emptySnapshot()}
}

// Reload discovers the files in dir, normalizes each one, and atomically
// installs the resulting snapshot. Files that fail to load are logged and
// skipped. If discovery itself fails the previous snapshot stays in effect
// and the error is returned.
func (r *Registry) Reload(dir string) error {
	r.reloadMu.Lock()
	defer r.reloadMu.Unlock()

	paths, err := loader.Discover(dir)
	if err != nil {
		return fmt.Errorf("reload: %w", err)
	}

	next := emptySnapshot()
	for _, path := range paths {
		// Stat before parsing so a file that vanishes mid-reload contributes
		// neither datasets nor metadata, instead of leaving datasets with no
		// backing FileRecord.
		fi, err := os.Stat(path)
		if err != nil {
			slog.Warn("registry: skipping file", "path", path, "err", err)
			continue
		}
		groups, err := loader.LoadFile(path)
		if err != nil {
			slog.Warn("registry: skipping file", "path", path, "err", err)
			continue
		}

		stem := dataset.Stem(path)
		for _, g := range groups {
			name := stem
			if g.Suffix != "" {
				name = stem + "_" + g.Suffix
			}
			if _, exists := next.datasets[name]; exists {
				slog.Warn("registry: dataset name collision, later file wins",
					"name", name, "path", path)
			} else {
				next.names = append(next.names, name)
			}
			next.datasets[name] = g.Records
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		ftype, _ := dataset.DetectType(path)
		next.files = append(next.files, dataset.FileRecord{
			Path:         abs,
			Type:         ftype,
			LastModified: fi.ModTime(),
			Size:         fi.Size(),
		})
		if fi.ModTime().After(next.lastModified) {
			next.lastModified = fi.ModTime()
		}
	}
	next.fingerprint = fingerprint(next)

	r.mu.Lock()
	r.snap = next
	r.mu.Unlock()

	total := 0
	for _, recs := range next.datasets {
		total += len(recs)
	}
	slog.Info("registry: reload complete",
		"dir", dir,
		"files", len(next.files),
		"datasets", len(next.names),
		"records", total,
	)
	return nil
}

// current pins the snapshot in effect at the time of the call. The returned
// snapshot is immutable.
func (r *Registry) current() *snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snap
}

// DatasetInfo lists all datasets with their record counts, in load order.
func (r *Registry) DatasetInfo() []Info {
	s := r.current()
	out := make([]Info, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, Info{Name: name, Records: len(s.datasets[name])})
	}
	return out
}

// Names returns the dataset names in load order.
func (r *Registry) Names() []string {
	s := r.current()
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Dataset returns the records of the named dataset, or false if it does not
// exist. Callers must treat the returned slice as read-only.
func (r *Registry) Dataset(name string) ([]dataset.Record, bool) {
	s := r.current()
	recs, ok := s.datasets[name]
	return recs, ok
}

// Datasets returns the records for each requested name; names not present
// map to an empty sequence.
func (r *Registry) Datasets(names []string) map[string][]dataset.Record {
	s := r.current()
	out := make(map[string][]dataset.Record, len(names))
	for _, name := range names {
		if recs, ok := s.datasets[name]; ok {
			out[name] = recs
		} else {
			out[name] = []dataset.Record{}
		}
	}
	return out
}

// AllDatasets returns every dataset keyed by name. The map is a copy; the
// record slices are shared and read-only.
func (r *Registry) AllDatasets() map[string][]dataset.Record {
	s := r.current()
	out := make(map[string][]dataset.Record, len(s.datasets))
	for name, recs := range s.datasets {
		out[name] = recs
	}
	return out
}

// FileSummary describes the currently loaded files. With nothing loaded it
// returns an explicit empty-state summary rather than failing.
func (r *Registry) FileSummary() FileSummary {
	s := r.current()
	if len(s.files) == 0 {
		return FileSummary{Source: "No files loaded", Type: "none"}
	}
	files := make([]dataset.FileRecord, len(s.files))
	copy(files, s.files)
	return FileSummary{
		Source:       fmt.Sprintf("Directory with %d files", len(s.files)),
		Type:         "multiple",
		FileCount:    len(s.files),
		Files:        files,
		LastModified: s.lastModified,
	}
}

// Fingerprint returns the current content fingerprint, or false when
// nothing is loaded.
func (r *Registry) Fingerprint() (string, bool) {
	s := r.current()
	if len(s.files) == 0 {
		return "", false
	}
	return s.fingerprint, true
}

// LastModified returns the most recent modification time across loaded
// files, or false when nothing is loaded.
func (r *Registry) LastModified() (time.Time, bool) {
	s := r.current()
	if len(s.files) == 0 {
		return time.Time{}, false
	}
	return s.lastModified, true
}

// fingerprint digests the (path, mtime) pairs in file order plus the sorted
// dataset names.
func fingerprint(s *snapshot) string {
	h := sha256.New()
	for _, f := range s.files {
		fmt.Fprintf(h, "%s:%d|", f.Path, f.LastModified.UnixNano())
	}
	names := make([]string, len(s.names))
	copy(names, s.names)
	sort.Strings(names)
	for _, name := range names {
		io.WriteString(h, name) //nolint:errcheck
		io.WriteString(h, "|")  //nolint:errcheck
	}
	return hex.EncodeToString(h.Sum(nil))
}
