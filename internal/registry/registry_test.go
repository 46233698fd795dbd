package registry_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/datadeck/datadeck/internal/registry"
)

// --- test helpers -----------------------------------------------------------

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func loadedRegistry(t *testing.T, dir string) *registry.Registry {
	t.Helper()
	reg := registry.New()
	if err := reg.Reload(dir); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	return reg
}

// --- Reload -----------------------------------------------------------------

func TestReload_DerivedNamesAndCounts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "x.json", `{"employees":[{"id":1},{"id":2}],"departments":[{"id":1},{"id":2}]}`)
	writeFile(t, dir, "inventory.csv", "sku,qty\nA,1\nB,2\nC,3\n")

	reg := loadedRegistry(t, dir)

	want := map[string]int{
		"x_employees":   2,
		"x_departments": 2,
		"inventory":     3,
	}
	infos := reg.DatasetInfo()
	if len(infos) != len(want) {
		t.Fatalf("DatasetInfo: got %d datasets, want %d", len(infos), len(want))
	}
	for _, info := range infos {
		if want[info.Name] != info.Records {
			t.Errorf("%s: got %d records, want %d", info.Name, info.Records, want[info.Name])
		}
	}
}

func TestReload_SkipsMalformedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.csv", "a\n1\n2\n")
	writeFile(t, dir, "bad.json", `{"broken": [`)

	reg := loadedRegistry(t, dir)

	if _, ok := reg.Dataset("good"); !ok {
		t.Error("good dataset missing after partial failure")
	}
	if _, ok := reg.Dataset("bad"); ok {
		t.Error("malformed file produced a dataset")
	}
	// A skipped file contributes neither datasets nor metadata: every
	// dataset must trace back to a listed file.
	summary := reg.FileSummary()
	if summary.FileCount != 1 {
		t.Errorf("FileCount: got %d, want 1", summary.FileCount)
	}
	if got := len(reg.Names()); got != summary.FileCount {
		t.Errorf("datasets without a backing file: %d names, %d files", got, summary.FileCount)
	}
}

func TestReload_NameCollision_LaterFileWins(t *testing.T) {
	dir := t.TempDir()
	// Both files derive the dataset name "stock_items"; discovery order is
	// lexicographic, so the .json file is loaded after the .csv-derived name.
	writeFile(t, dir, "stock.json", `{"items":[{"id":1}]}`)
	writeFile(t, dir, "stock_items.csv", "id\n10\n20\n")

	reg := loadedRegistry(t, dir)

	recs, ok := reg.Dataset("stock_items")
	if !ok {
		t.Fatal("stock_items missing")
	}
	// stock_items.csv sorts after stock.json, so its two rows win.
	if len(recs) != 2 {
		t.Errorf("collision winner: got %d records, want 2 (from stock_items.csv)", len(recs))
	}
	if got := len(reg.Names()); got != 1 {
		t.Errorf("Names: got %d, want 1", got)
	}
}

func TestReload_DirectoryGone_KeepsPreviousSnapshot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "data.csv", "a\n1\n")
	reg := loadedRegistry(t, dir)

	if err := reg.Reload(filepath.Join(dir, "vanished")); err == nil {
		t.Fatal("Reload on missing dir: expected error, got nil")
	}
	if _, ok := reg.Dataset("data"); !ok {
		t.Error("previous snapshot lost after failed reload")
	}
	if _, ok := reg.Fingerprint(); !ok {
		t.Error("fingerprint lost after failed reload")
	}
}

// --- reads ------------------------------------------------------------------

func TestDatasets_MissingNameMapsToEmpty(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "data.csv", "a\n1\n")
	reg := loadedRegistry(t, dir)

	out := reg.Datasets([]string{"data", "ghost"})
	if len(out["data"]) != 1 {
		t.Errorf("data: got %d records, want 1", len(out["data"]))
	}
	recs, ok := out["ghost"]
	if !ok || recs == nil || len(recs) != 0 {
		t.Errorf("ghost: got %#v, want empty non-nil slice", recs)
	}
}

func TestAllDatasets_MapCopyIsStable(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "data.csv", "a\n1\n")
	reg := loadedRegistry(t, dir)

	all := reg.AllDatasets()
	if len(all) != 1 || len(all["data"]) != 1 {
		t.Fatalf("AllDatasets: got %d datasets", len(all))
	}

	// The returned map is a copy: a reload must not mutate it.
	writeFile(t, dir, "more.csv", "b\n2\n")
	if err := reg.Reload(dir); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("copy mutated by reload: got %d datasets", len(all))
	}
}

func TestFileSummary_Empty(t *testing.T) {
	reg := registry.New()
	s := reg.FileSummary()
	if s.Source != "No files loaded" || s.Type != "none" || s.FileCount != 0 {
		t.Errorf("empty summary: got %+v", s)
	}
	if _, ok := reg.Fingerprint(); ok {
		t.Error("Fingerprint on empty registry: expected absent")
	}
	if _, ok := reg.LastModified(); ok {
		t.Error("LastModified on empty registry: expected absent")
	}
}

func TestFileSummary_Loaded(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", "x\n1\n")
	writeFile(t, dir, "b.json", `[{"x":1}]`)
	reg := loadedRegistry(t, dir)

	s := reg.FileSummary()
	if s.Source != "Directory with 2 files" || s.Type != "multiple" {
		t.Errorf("summary: got %+v", s)
	}
	if s.FileCount != 2 || len(s.Files) != 2 {
		t.Errorf("file count: got %d/%d, want 2/2", s.FileCount, len(s.Files))
	}
	if s.LastModified.IsZero() {
		t.Error("LastModified: got zero time")
	}
	for _, f := range s.Files {
		if !filepath.IsAbs(f.Path) {
			t.Errorf("file path %q is not absolute", f.Path)
		}
	}
}

// --- fingerprint ------------------------------------------------------------

func TestFingerprint_StableAcrossReads(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "data.csv", "a\n1\n")
	reg := loadedRegistry(t, dir)

	fp1, ok1 := reg.Fingerprint()
	fp2, ok2 := reg.Fingerprint()
	if !ok1 || !ok2 || fp1 != fp2 {
		t.Errorf("fingerprint not stable: %q vs %q", fp1, fp2)
	}
}

func TestFingerprint_ChangesOnFileAdded(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "data.csv", "a\n1\n")
	reg := loadedRegistry(t, dir)
	fp1, _ := reg.Fingerprint()

	writeFile(t, dir, "more.csv", "b\n2\n")
	if err := reg.Reload(dir); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	fp2, _ := reg.Fingerprint()
	if fp1 == fp2 {
		t.Error("fingerprint unchanged after file added")
	}
}

func TestFingerprint_ChangesOnFileRemoved(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "data.csv", "a\n1\n")
	p := writeFile(t, dir, "more.csv", "b\n2\n")
	reg := loadedRegistry(t, dir)
	fp1, _ := reg.Fingerprint()

	if err := os.Remove(p); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := reg.Reload(dir); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	fp2, _ := reg.Fingerprint()
	if fp1 == fp2 {
		t.Error("fingerprint unchanged after file removed")
	}
}

func TestFingerprint_ChangesOnMtimeChange(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "data.csv", "a\n1\n")
	reg := loadedRegistry(t, dir)
	fp1, _ := reg.Fingerprint()

	// Same content, new mtime: the fingerprint keys off (path, mtime).
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(p, future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	if err := reg.Reload(dir); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	fp2, _ := reg.Fingerprint()
	if fp1 == fp2 {
		t.Error("fingerprint unchanged after mtime change")
	}
}

// --- concurrency ------------------------------------------------------------

// TestConcurrentReadersDuringReload flips the directory contents between two
// generations while readers continuously list datasets. Readers must always
// see a complete generation: either both "gen-a" datasets or both "gen-b"
// datasets, never a mix.
func TestConcurrentReadersDuringReload(t *testing.T) {
	dirA := t.TempDir()
	writeFile(t, dirA, "one.csv", "a\n1\n")
	writeFile(t, dirA, "two.csv", "a\n1\n")

	dirB := t.TempDir()
	writeFile(t, dirB, "three.csv", "a\n1\n")
	writeFile(t, dirB, "four.csv", "a\n1\n")

	reg := loadedRegistry(t, dirA)

	done := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				names := reg.Names()
				if len(names) != 2 {
					t.Errorf("snapshot tear: got %d names %v", len(names), names)
					return
				}
				set := map[string]bool{}
				for _, n := range names {
					set[n] = true
				}
				fromA := set["one"] && set["two"]
				fromB := set["three"] && set["four"]
				if !fromA && !fromB {
					t.Errorf("mixed snapshot observed: %v", names)
					return
				}
			}
		}()
	}

	for i := 0; i < 25; i++ {
		src := dirA
		if i%2 == 0 {
			src = dirB
		}
		if err := reg.Reload(src); err != nil {
			t.Fatalf("Reload: %v", err)
		}
	}
	close(done)
	wg.Wait()
}
