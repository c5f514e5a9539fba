package render

import (
	"fmt"
	"path/filepath"

	"github.com/banshee-data/cornerplot/internal/fsutil"
	"github.com/banshee-data/cornerplot/internal/monitoring"
)

// publish writes a fully rendered figure to dir/name and hands it to the
// viewer. A failed write removes the partial file.
func publish(fs fsutil.FileSystem, dir, name string, data []byte, viewer Viewer) (string, error) {
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	path := filepath.Join(dir, name)
	f, err := fs.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	_, werr := f.Write(data)
	cerr := f.Close()
	if werr != nil || cerr != nil {
		if rmErr := fs.Remove(path); rmErr != nil {
			monitoring.Logf("Warning: failed to remove partial %s: %v", path, rmErr)
		}
		if werr != nil {
			return "", fmt.Errorf("write %s: %w", path, werr)
		}
		return "", fmt.Errorf("close %s: %w", path, cerr)
	}
	monitoring.Logf("Wrote %s", path)

	if viewer != nil {
		if err := viewer.Show(path); err != nil {
			return path, fmt.Errorf("show %s: %w", path, err)
		}
	}
	return path, nil
}
