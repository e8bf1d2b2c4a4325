package readinglist

import "github.com/jeanpaul/shelf/internal/book"

// Session is what a front end talks to: the store plus the catalog snapshot
// fetched for this run.
type Session struct {
	store   *Store
	catalog []book.Record
}

func NewSession(store *Store, catalog []book.Record) *Session {
	c := make([]book.Record, len(catalog))
	copy(c, catalog)
	return &Session{store: store, catalog: c}
}

func (s *Session) CurrentState() []book.Record { return s.store.Current() }

func (s *Session) Add(b book.Record) ([]book.Record, error) { return s.store.Add(b) }

func (s *Session) Remove(title string) ([]book.Record, error) { return s.store.Remove(title) }

// Search filters the session catalog by title.
func (s *Session) Search(query string) []book.Record { return Search(s.catalog, query) }

func (s *Session) Catalog() []book.Record {
	out := make([]book.Record, len(s.catalog))
	copy(out, s.catalog)
	return out
}

func (s *Session) Listed(b book.Record) bool { return s.store.Contains(b) }
