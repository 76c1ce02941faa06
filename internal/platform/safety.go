package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// devDirName is the temp subdirectory sandboxed data directories live in.
const devDirName = "atcdesk-dev"

// IsDevRun reports whether the process was started by `go run` or `go test`,
// whose binaries live in the temp dir or end in ".test".
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}
	if strings.HasPrefix(strings.ToLower(exe), strings.ToLower(os.TempDir())) {
		return true
	}
	return strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe")
}

// ResolveDataPath returns the directory to use for userPath. With sandbox
// set, paths outside the temp dir are re-rooted under <temp>/atcdesk-dev.
func ResolveDataPath(userPath string, sandbox bool) string {
	if !sandbox {
		if userPath == "" {
			return "."
		}
		return userPath
	}

	clean := filepath.Clean(userPath)
	if filepath.IsAbs(clean) {
		if rel, err := filepath.Rel(os.TempDir(), clean); err == nil && !strings.HasPrefix(rel, "..") {
			return clean
		}
	}

	name := filepath.Base(clean)
	if userPath == "" || name == "." || name == string(os.PathSeparator) || name == ".." {
		name = "default"
	}
	return filepath.Join(os.TempDir(), devDirName, name)
}
