// Package readinglist holds the user's curated list of books and keeps it
// durable through a key/value channel.
package readinglist

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jeanpaul/shelf/internal/book"
	"github.com/jeanpaul/shelf/internal/kv"
)

// DefaultKey is the key the whole list is stored under.
const DefaultKey = "readingList"

// Store owns the reading list. Every mutation is applied in memory first
// and then written through to the channel as one whole snapshot.
type Store struct {
	mu      sync.RWMutex
	entries []book.Record
	ch      kv.Channel
	key     string
	log     *slog.Logger
}

type Option func(*Store)

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// New returns an empty store bound to ch. Call Load to pick up what a
// previous session persisted.
func New(ch kv.Channel, opts ...Option) *Store {
	s := &Store{
		entries: []book.Record{},
		ch:      ch,
		key:     DefaultKey,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("component", "readinglist", "key", s.key)
	return s
}

// Open is New followed by Load. A corrupt snapshot is logged and dropped;
// only channel failures are returned.
func Open(ch kv.Channel, opts ...Option) (*Store, error) {
	s := New(ch, opts...)
	if _, err := s.Load(); err != nil {
		var corrupt *CorruptStateError
		if !errors.As(err, &corrupt) {
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) Key() string { return s.key }

// Load replaces the in-memory list with the persisted one. A missing or
// empty value yields an empty list. An unparsable value also yields an
// empty list, and a *CorruptStateError is returned alongside it.
func (s *Store) Load() ([]book.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = []book.Record{}

	blob, ok, err := s.ch.Read(s.key)
	if err != nil {
		s.log.Error("read reading list failed", "err", err)
		return s.snapshot(), fmt.Errorf("load reading list: %w", err)
	}
	if !ok || blob == "" {
		s.log.Debug("no stored reading list")
		return s.snapshot(), nil
	}

	entries, err := Decode(blob)
	if err != nil {
		s.log.Warn("stored reading list is corrupt, starting empty", "err", err, "bytes", len(blob))
		return s.snapshot(), &CorruptStateError{Key: s.key, Err: err}
	}

	s.entries = dedup(entries)
	s.log.Debug("reading list loaded", "entries", len(s.entries))
	return s.snapshot(), nil
}

// Add appends b unless an entry with the same title and author is already
// present, in which case the list is returned unchanged and nothing is
// written. A record that could not be read back (no title or author) is
// rejected without touching the list. Otherwise the returned error only
// reports a failed write and the entry stays in the in-memory list.
func (s *Store) Add(b book.Record) ([]book.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := b.Validate(); err != nil {
		return s.snapshot(), fmt.Errorf("add to reading list: %w", err)
	}
	if s.indexOf(b.Key()) >= 0 {
		return s.snapshot(), nil
	}
	s.entries = append(s.entries, b)
	s.log.Info("book added", "title", b.Title, "author", b.Author, "entries", len(s.entries))
	return s.snapshot(), s.persist()
}

// Remove drops every entry titled title, whoever the author. Unlike Add it
// matches on title alone. The list is written even when nothing matched.
func (s *Store) Remove(title string) ([]book.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]book.Record, 0, len(s.entries))
	for _, e := range s.entries {
		if e.Title != title {
			kept = append(kept, e)
		}
	}
	if removed := len(s.entries) - len(kept); removed > 0 {
		s.log.Info("books removed", "title", title, "removed", removed, "entries", len(kept))
	}
	s.entries = kept
	return s.snapshot(), s.persist()
}

// Current returns a copy of the list.
func (s *Store) Current() []book.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// Contains reports whether an entry with b's identity is listed.
func (s *Store) Contains(b book.Record) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(b.Key()) >= 0
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// persist must be called with mu held.
func (s *Store) persist() error {
	blob, err := Encode(s.entries)
	if err != nil {
		return err
	}
	if err := s.ch.Write(s.key, blob); err != nil {
		s.log.Error("persist reading list failed", "err", err)
		return fmt.Errorf("persist reading list: %w", err)
	}
	return nil
}

func (s *Store) indexOf(k book.Key) int {
	for i, e := range s.entries {
		if e.Key() == k {
			return i
		}
	}
	return -1
}

func (s *Store) snapshot() []book.Record {
	out := make([]book.Record, len(s.entries))
	copy(out, s.entries)
	return out
}

// dedup keeps the first occurrence of each identity. A snapshot written by
// this store never has duplicates; hand-edited ones might.
func dedup(entries []book.Record) []book.Record {
	seen := make(map[book.Key]bool, len(entries))
	out := make([]book.Record, 0, len(entries))
	for _, e := range entries {
		if seen[e.Key()] {
			continue
		}
		seen[e.Key()] = true
		out = append(out, e)
	}
	return out
}
