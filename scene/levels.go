package scene

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/automoto/tiledmap/tmx"
)

// LoadAll parses every .tmx file in dir within fsys and returns the maps
// keyed by file stem plus the sorted stem list. The first failing map aborts
// the load.
func LoadAll(fsys fs.FS, dir string) (map[string]*tmx.Map, []string, error) {
	pattern := path.Join(dir, "*.tmx")
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s: %w", dir, tmx.ErrNotFound)
	}

	levels := make(map[string]*tmx.Map, len(matches))
	names := make([]string, 0, len(matches))
	for _, p := range matches {
		m, err := tmx.LoadFile(p, tmx.WithFileSystem(fsys))
		if err != nil {
			return nil, nil, err
		}
		stem := strings.TrimSuffix(path.Base(p), ".tmx")
		levels[stem] = m
		names = append(names, stem)
	}

	sort.Strings(names)
	return levels, names, nil
}
