package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeInterface(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestProcessDir(t *testing.T) {
	dir := t.TempDir()
	writeInterface(t, dir, "b.i", `
template<class T> struct Box {};
%template(IntBox) Box<int>;
`)
	writeInterface(t, dir, "a.i", `
template<class T> struct Vec {};
%template(IntVec) Vec<int>;
`)
	writeInterface(t, dir, "skip.txt", "not an interface file")

	results, err := ProcessDir(context.Background(), dir, 32, 2)
	if err != nil {
		t.Fatalf("ProcessDir: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if filepath.Base(results[0].Path) != "a.i" || filepath.Base(results[1].Path) != "b.i" {
		t.Fatalf("results out of order: %v, %v", results[0].Path, results[1].Path)
	}
	for _, r := range results {
		if r.Err != nil {
			t.Fatalf("%s: %v", r.Path, r.Err)
		}
		if r.Result.Recorder.Len() != 1 {
			t.Fatalf("%s: instantiations = %d, want 1", r.Path, r.Result.Recorder.Len())
		}
	}
}

func TestProcessDirEmpty(t *testing.T) {
	results, err := ProcessDir(context.Background(), t.TempDir(), 32, 0)
	if err != nil {
		t.Fatalf("ProcessDir: %v", err)
	}
	if results != nil {
		t.Fatalf("results = %v, want none", results)
	}
}

func TestProcessDirCancelled(t *testing.T) {
	dir := t.TempDir()
	writeInterface(t, dir, "a.i", `template<class T> struct Box {};`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ProcessDir(ctx, dir, 32, 1); err == nil {
		t.Fatalf("cancelled context not propagated")
	}
}
