// Package fsutil provides file system utility functions.
package fsutil

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FindFilesByExtension lists the regular files directly inside dir whose name
// ends with extension, sorted by name. It does not descend into subdirectories.
func FindFilesByExtension(dir string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.Type().IsRegular() && strings.HasSuffix(entry.Name(), extension) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// ModTime returns the modification time of path. The boolean is false when
// the path does not exist or cannot be stat'ed.
func ModTime(path string) (time.Time, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsRegular reports whether path is a regular file.
func IsRegular(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// EnsureParentDir creates every missing directory above path.
func EnsureParentDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
