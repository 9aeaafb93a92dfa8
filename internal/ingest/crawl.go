package ingest

import (
	"io/fs"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// ExpandGlobs walks root and returns every file matching an include pattern
// and no exclude pattern, using doublestar.Match against each relative,
// slash-normalized path. Returns a synchronous slice for the CLI's
// batch-compress command.
func ExpandGlobs(root string, include, exclude []string) ([]string, error) {
	var matches []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		normalized := filepath.ToSlash(rel)

		if d.IsDir() {
			if normalized == "." {
				return nil
			}
			for _, pat := range exclude {
				if matched, _ := doublestar.Match(pat, normalized); matched {
					return fs.SkipDir
				}
			}
			return nil
		}

		for _, pat := range exclude {
			if matched, _ := doublestar.Match(pat, normalized); matched {
				return nil
			}
		}

		included := len(include) == 0
		for _, pat := range include {
			if matched, _ := doublestar.Match(pat, normalized); matched {
				included = true
				break
			}
		}
		if included {
			matches = append(matches, path)
		}
		return nil
	})
	return matches, err
}
