// Package catalog fetches the browsable set of books once per session.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jeanpaul/shelf/internal/book"
)

// Source yields the full catalog. Implementations are called once before
// interaction begins.
type Source interface {
	Fetch(ctx context.Context) ([]book.Record, error)
	Name() string
}

// ErrCatalogUnavailable matches every *UnavailableError via errors.Is.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// UnavailableError is returned when the catalog cannot be produced.
type UnavailableError struct {
	Source string
	Err    error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("catalog unavailable (%s): %s", e.Source, friendlyError(e.Err))
}

func (e *UnavailableError) Unwrap() error { return e.Err }

func (e *UnavailableError) Is(target error) bool { return target == ErrCatalogUnavailable }

func unavailable(source string, err error) error {
	var ue *UnavailableError
	if errors.As(err, &ue) {
		return err
	}
	return &UnavailableError{Source: source, Err: err}
}

// Snapshot is an immutable, already fetched catalog.
type Snapshot struct {
	source  string
	records []book.Record
}

// Load fetches from src and freezes the result.
func Load(ctx context.Context, src Source) (*Snapshot, error) {
	recs, err := src.Fetch(ctx)
	if err != nil {
		return nil, unavailable(src.Name(), err)
	}
	return NewSnapshot(src.Name(), recs), nil
}

func NewSnapshot(source string, recs []book.Record) *Snapshot {
	c := make([]book.Record, len(recs))
	copy(c, recs)
	return &Snapshot{source: source, records: c}
}

// Records returns a copy of the catalog in source order.
func (s *Snapshot) Records() []book.Record {
	out := make([]book.Record, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Snapshot) Len() int { return len(s.records) }

func (s *Snapshot) Source() string { return s.source }

// validate rejects records missing a title or author.
func validate(recs []book.Record) error {
	for i, r := range recs {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}
