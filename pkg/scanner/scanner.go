// Package scanner finds documentation pages on disk.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dtnitsch/styleguide-audit/models"
	"github.com/dtnitsch/styleguide-audit/pkg/storage"
)

// PageFile is the file name of a component documentation page.
const PageFile = "page.tsx"

// skipDirs are never descended into.
var skipDirs = map[string]bool{
	"node_modules": true,
	".next":        true,
	".git":         true,
	"dist":         true,
	"build":        true,
}

// Scan loads every page under root through s, sorted by path. root may also
// name a single .tsx file. A non-empty component keeps only that component's
// page.
func Scan(s *storage.Storage, root, component string) ([]models.Document, error) {
	if s == nil {
		s = &storage.Storage{}
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("error reading pages directory: %w", err)
	}

	var paths []string
	if !info.IsDir() {
		if filepath.Ext(root) != ".tsx" {
			return nil, fmt.Errorf("%s is not a .tsx page", root)
		}
		paths = append(paths, root)
	} else {
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && skipDirs[d.Name()] {
					return filepath.SkipDir
				}
				return nil
			}
			if d.Name() == PageFile {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("error scanning %s: %w", root, err)
		}
	}
	sort.Strings(paths)

	docs := make([]models.Document, 0, len(paths))
	for _, path := range paths {
		name := ComponentName(path)
		if component != "" && !strings.EqualFold(name, component) {
			continue
		}
		src, err := s.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading page: %w", err)
		}
		docs = append(docs, models.Document{FilePath: path, Component: name, Source: string(src)})
	}
	return docs, nil
}

// ComponentName derives the component a page documents: the directory name
// for page.tsx, the file's base name otherwise.
func ComponentName(path string) string {
	base := filepath.Base(path)
	if base == PageFile {
		return filepath.Base(filepath.Dir(path))
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}
