// Package fileutil provides small file and path helpers.
package fileutil

import (
	"os"
	"path/filepath"
)

// FileExists returns true if path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists returns true if path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// FindUpwards looks for name in startDir and then in up to maxLevels parent
// directories. Returns the absolute path of the first match, or "" with
// ok=false when the file is nowhere to be found.
func FindUpwards(name, startDir string, maxLevels int) (path string, ok bool) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false
	}

	for level := 0; level < maxLevels; level++ {
		candidate := filepath.Join(dir, name)
		if FileExists(candidate) {
			return candidate, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false
}
