package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// FileResult pairs one processed interface file with its path.
type FileResult struct {
	Path   string
	Result *ProcessResult
	Err    error
}

// listInterfaceFiles returns the sorted *.i files under dir.
func listInterfaceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".i") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// ProcessDir processes every interface file under dir in parallel. Results
// come back in the sorted file order regardless of scheduling; per-file
// failures are carried in FileResult.Err rather than aborting the group.
func ProcessDir(ctx context.Context, dir string, maxDiagnostics, jobs int) ([]FileResult, error) {
	files, err := listInterfaceFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			res, err := ProcessFile(path, maxDiagnostics)
			results[i] = FileResult{Path: path, Result: res, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
