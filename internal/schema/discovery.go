package schema

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// DiscoverTargets expands the kind's discovery glob below dir. Directories
// are excluded and matches are sorted lexicographically so output ordering
// does not depend on filesystem return order.
func DiscoverTargets(dir string, kind Kind) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), kind.Pattern())
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(matches))
	for _, m := range matches {
		full := filepath.Join(dir, filepath.FromSlash(m))
		info, sErr := os.Stat(full)
		if sErr != nil || info.IsDir() {
			continue
		}
		files = append(files, full)
	}

	sort.Strings(files)
	return files, nil
}
