package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/jeanpaul/shelf/internal/book"
)

// FileSource reads the catalog from local YAML or JSON files, for offline
// use and fixtures. Each file holds a list of books, or an object with a
// "books" list (the shape of a saved GraphQL reply's data).
type FileSource struct {
	pattern string
}

// NewFileSource matches pattern with doublestar syntax, e.g.
// "catalogs/**/*.yaml".
func NewFileSource(pattern string) (*FileSource, error) {
	if pattern == "" {
		return nil, fmt.Errorf("catalog: file pattern is required")
	}
	if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
		return nil, fmt.Errorf("catalog: invalid file pattern %q", pattern)
	}
	return &FileSource{pattern: pattern}, nil
}

func (f *FileSource) Name() string { return f.pattern }

func (f *FileSource) Fetch(ctx context.Context) ([]book.Record, error) {
	paths, err := doublestar.FilepathGlob(f.pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, unavailable(f.Name(), err)
	}
	if len(paths) == 0 {
		return nil, unavailable(f.Name(), fmt.Errorf("no catalog files match"))
	}
	sort.Strings(paths)

	var all []book.Record
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		recs, err := readCatalogFile(p)
		if err != nil {
			return nil, unavailable(f.Name(), err)
		}
		all = append(all, recs...)
	}
	if err := validate(all); err != nil {
		return nil, unavailable(f.Name(), err)
	}
	return all, nil
}

type booksDoc struct {
	Books []book.Record `json:"books" yaml:"books"`
}

func readCatalogFile(path string) ([]book.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		var recs []book.Record
		if err := json.Unmarshal(data, &recs); err == nil {
			return recs, nil
		}
		var doc booksDoc
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return doc.Books, nil
	case ".yaml", ".yml":
		var recs []book.Record
		if err := yaml.Unmarshal(data, &recs); err == nil {
			return recs, nil
		}
		var doc booksDoc
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return doc.Books, nil
	default:
		return nil, fmt.Errorf("%s: unsupported catalog file type", path)
	}
}
