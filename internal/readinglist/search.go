package readinglist

import (
	"strings"

	"github.com/jeanpaul/shelf/internal/book"
)

// Search returns the catalog records whose title contains query, ignoring
// case. An empty query matches everything. The catalog is not modified and
// order is preserved.
func Search(catalog []book.Record, query string) []book.Record {
	q := strings.ToLower(query)
	out := make([]book.Record, 0, len(catalog))
	for _, r := range catalog {
		if strings.Contains(strings.ToLower(r.Title), q) {
			out = append(out, r)
		}
	}
	return out
}
