package platform

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrRootNotFound is returned by FindRoot when no marker is found.
var ErrRootNotFound = errors.New("desk root not found")

// RootMarkers identify a desk root: a .atcdesk directory or a config file.
var RootMarkers = []string{".atcdesk", "atcdesk.yaml", "atcdesk.yml", "atcdesk.toml", "atcdesk.json"}

// FindRoot walks up from startDir to the first directory holding a root
// marker and returns its absolute path.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		for _, m := range RootMarkers {
			if hasFile(dir, m) {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrRootNotFound
		}
		dir = parent
	}
}

func hasFile(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}
