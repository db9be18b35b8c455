package printcheck

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/vialabel/vialcad/mesh"
	"golang.org/x/sync/errgroup"
)

// ValidateFiles reads each STL file, runs all checks against it and returns
// one report per path in input order. Meshes are validated in parallel. A
// file that cannot be read or indexed aborts the run with an error; check
// failures never do, they only surface in the reports.
func ValidateFiles(ctx context.Context, paths []string, limits Limits) ([]Report, error) {
	if len(paths) == 0 {
		return nil, ErrNoMeshes
	}
	reports := make([]Report, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			tris, err := mesh.ReadSTLFile(path)
			if tris == nil && err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			m, err := mesh.New(tris, 0)
			if err != nil {
				return fmt.Errorf("index %s: %w", path, err)
			}
			reports[i] = Validate(ctx, filepath.Base(path), m, limits)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// Failed reports whether any per-mesh report did not pass outright.
// Inconclusive results count as not passed.
func Failed(reports []Report) bool {
	for _, r := range reports {
		if r.Status() != StatusPass {
			return true
		}
	}
	return false
}

// ErrNoMeshes is returned by ValidateFiles when the caller supplies no input.
var ErrNoMeshes = errors.New("no mesh files to validate")
