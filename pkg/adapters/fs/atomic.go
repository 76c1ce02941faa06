package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

// TempFilePrefix marks in-flight writes. Keys, Watch and the cache skip
// names that carry it.
const TempFilePrefix = "atcdesk-tmp-"

// tempPattern names the temp file after the key file it replaces, so a
// leftover from a crash shows which key it belonged to.
func tempPattern(filename string) string {
	return TempFilePrefix + filepath.Base(filename) + "-*"
}

// writeFileAtomic replaces filename with data through a synced temp file in
// the same directory. Readers see the old value or the new one, never a
// partial write.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)

	tmp, err := os.CreateTemp(dir, tempPattern(filename))
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", filepath.Base(filename), err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", filename, err)
	}
	syncDir(dir)
	return nil
}

// syncDir flushes the directory entry of a rename. Windows cannot open a
// directory for syncing; errors are ignored there and everywhere else.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}
