package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/datadeck/datadeck/internal/dataset"
)

// ErrDirectoryNotFound indicates the data directory is missing or is not a
// directory.
var ErrDirectoryNotFound = errors.New("data directory not found")

// Discover returns the paths of all regular files in dir that carry a
// recognized extension, sorted by path for deterministic load order. An
// empty result is valid; callers decide whether that is acceptable.
func Discover(dir string) ([]string, error) {
	fi, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrDirectoryNotFound, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read data directory %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if !dataset.Recognized(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}
