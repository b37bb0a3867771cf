package builder

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/vk/litemake/internal/fsutil"
)

// ResolveSources expands patterns relative to home into regular files.
func ResolveSources(home string, patterns []string) ([]string, error) {
	var sources []string
	seen := make(map[string]struct{})

	for _, pattern := range patterns {
		matches, err := glob(home, pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid source glob %q: %w", pattern, err)
		}
		sort.Strings(matches)
		for _, m := range matches {
			m = filepath.Clean(m)
			if _, dup := seen[m]; dup || !fsutil.IsRegular(m) {
				continue
			}
			seen[m] = struct{}{}
			sources = append(sources, m)
		}
	}
	return sources, nil
}

// glob matches inside home through an fs.FS when the pattern stays below
// home, and against the host file system otherwise.
func glob(home, pattern string) ([]string, error) {
	slashed := path.Clean(filepath.ToSlash(pattern))
	if filepath.IsAbs(pattern) || !fs.ValidPath(slashed) {
		full := pattern
		if !filepath.IsAbs(full) {
			full = filepath.Join(home, pattern)
		}
		return doublestar.FilepathGlob(full, doublestar.WithFilesOnly())
	}

	rel, err := doublestar.Glob(os.DirFS(home), slashed, doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}
	matches := make([]string, len(rel))
	for i, r := range rel {
		matches[i] = filepath.Join(home, filepath.FromSlash(r))
	}
	return matches, nil
}
