package readinglist

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/shelf/internal/book"
	"github.com/jeanpaul/shelf/internal/kv"
)

var (
	dune      = book.Record{Title: "Dune", Author: "Herbert", CoverPhotoURL: "x", ReadingLevel: book.TextLevel("YA")}
	duneOther = book.Record{Title: "Dune", Author: "OtherAuthor", CoverPhotoURL: "y", ReadingLevel: book.NumberLevel(5)}
	matilda   = book.Record{Title: "Matilda", Author: "Dahl", CoverPhotoURL: "m.png", ReadingLevel: book.NumberLevel(3)}
	holes     = book.Record{Title: "Holes", Author: "Sachar", CoverPhotoURL: "h.png", ReadingLevel: book.TextLevel("H")}
)

// failingChannel lets tests break reads or writes.
type failingChannel struct {
	kv.Channel
	readErr  error
	writeErr error
	writes   int
}

func (f *failingChannel) Read(key string) (string, bool, error) {
	if f.readErr != nil {
		return "", false, f.readErr
	}
	return f.Channel.Read(key)
}

func (f *failingChannel) Write(key, value string) error {
	f.writes++
	if f.writeErr != nil {
		return f.writeErr
	}
	return f.Channel.Write(key, value)
}

func titles(recs []book.Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Title + "/" + r.Author
	}
	return out
}

func TestStore_DuneScenario(t *testing.T) {
	s := New(kv.NewMemory())

	state, err := s.Add(dune)
	require.NoError(t, err)
	assert.Len(t, state, 1)

	state, err = s.Add(dune)
	require.NoError(t, err)
	assert.Len(t, state, 1, "adding the same record twice is a no-op")

	state, err = s.Add(duneOther)
	require.NoError(t, err)
	assert.Len(t, state, 2, "same title, different author is a different entry")

	state, err = s.Remove("Dune")
	require.NoError(t, err)
	assert.Empty(t, state, "remove matches on title only")
}

func TestStore_AddIsIdempotent(t *testing.T) {
	ch := &failingChannel{Channel: kv.NewMemory()}
	s := New(ch)
	for _, b := range []book.Record{dune, matilda, holes} {
		_, err := s.Add(b)
		require.NoError(t, err)
	}
	before := s.Current()
	writes := ch.writes

	// differing cover and level do not change identity
	again := matilda
	again.CoverPhotoURL = "other.png"
	again.ReadingLevel = book.TextLevel("Z")
	after, err := s.Add(again)
	require.NoError(t, err)

	assert.Equal(t, before, after)
	assert.Equal(t, writes, ch.writes, "duplicate add must not write")
}

func TestStore_AddPreservesOrder(t *testing.T) {
	s := New(kv.NewMemory())
	for _, b := range []book.Record{holes, dune, matilda} {
		_, err := s.Add(b)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"Holes/Sachar", "Dune/Herbert", "Matilda/Dahl"}, titles(s.Current()))
}

func TestStore_IdentityIsCaseSensitive(t *testing.T) {
	s := New(kv.NewMemory())
	_, err := s.Add(dune)
	require.NoError(t, err)
	state, err := s.Add(book.Record{Title: "dune", Author: "Herbert"})
	require.NoError(t, err)
	assert.Len(t, state, 2)
}

func TestStore_RemoveMissingTitleStillWrites(t *testing.T) {
	ch := &failingChannel{Channel: kv.NewMemory()}
	s := New(ch)
	_, err := s.Add(dune)
	require.NoError(t, err)
	before := s.Current()
	writes := ch.writes

	after, err := s.Remove("Nope")
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, writes+1, ch.writes)
}

func TestStore_RemoveKeepsOthersInOrder(t *testing.T) {
	s := New(kv.NewMemory())
	for _, b := range []book.Record{holes, dune, matilda, duneOther} {
		_, err := s.Add(b)
		require.NoError(t, err)
	}
	state, err := s.Remove("Dune")
	require.NoError(t, err)
	assert.Equal(t, []string{"Holes/Sachar", "Matilda/Dahl"}, titles(state))
}

func TestStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	backends := map[string]string{
		kv.BackendFile: filepath.Join(dir, "shelf.json"),
		kv.BackendBolt: filepath.Join(dir, "shelf.db"),
	}
	for backend, path := range backends {
		t.Run(backend, func(t *testing.T) {
			ch, err := kv.Open(backend, path)
			require.NoError(t, err)

			s := New(ch)
			_, err = s.Load()
			require.NoError(t, err)
			for _, b := range []book.Record{dune, matilda, duneOther, holes} {
				_, err := s.Add(b)
				require.NoError(t, err)
			}
			_, err = s.Remove("Matilda")
			require.NoError(t, err)
			want := s.Current()
			require.NoError(t, ch.Close())

			ch2, err := kv.Open(backend, path)
			require.NoError(t, err)
			defer ch2.Close()
			got, err := New(ch2).Load()
			require.NoError(t, err)
			assert.Equal(t, want, got)
			assert.True(t, got[1].ReadingLevel.IsNumber(), "level kind survives persistence")
		})
	}
}

func TestStore_LoadAbsentOrEmpty(t *testing.T) {
	ch := kv.NewMemory()
	s := New(ch)
	state, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, state)
	assert.NotNil(t, state)

	require.NoError(t, ch.Write(DefaultKey, ""))
	state, err = s.Load()
	require.NoError(t, err)
	assert.Empty(t, state)
}

func TestStore_LoadCorrupt(t *testing.T) {
	cases := map[string]string{
		"not json":       `{oops`,
		"object":         `{"title":"Dune"}`,
		"null":           `null`,
		"missing author": `[{"title":"Dune"}]`,
		"bad level":      `[{"title":"Dune","author":"H","readingLevel":{"x":1}}]`,
	}
	for name, blob := range cases {
		t.Run(name, func(t *testing.T) {
			var logs bytes.Buffer
			ch := kv.NewMemory()
			require.NoError(t, ch.Write(DefaultKey, blob))

			s := New(ch, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
			state, err := s.Load()

			var corrupt *CorruptStateError
			require.ErrorAs(t, err, &corrupt)
			assert.Equal(t, DefaultKey, corrupt.Key)
			assert.Empty(t, state)
			assert.Contains(t, logs.String(), "corrupt")

			// the store stays usable and the next write replaces the bad blob
			_, err = s.Add(dune)
			require.NoError(t, err)
			got, err := New(ch).Load()
			require.NoError(t, err)
			assert.Equal(t, []book.Record{dune}, got)
		})
	}
}

func TestStore_LoadToleratesExtraFields(t *testing.T) {
	ch := kv.NewMemory()
	blob := `[{"__typename":"Book","title":"Dune","author":"Herbert","coverPhotoURL":"x","readingLevel":"YA"}]`
	require.NoError(t, ch.Write(DefaultKey, blob))

	state, err := New(ch).Load()
	require.NoError(t, err)
	assert.Equal(t, []book.Record{dune}, state)
}

func TestOpen_IgnoresCorruptState(t *testing.T) {
	ch := kv.NewMemory()
	require.NoError(t, ch.Write(DefaultKey, "garbage"))

	s, err := Open(ch)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestOpen_ReadFailure(t *testing.T) {
	boom := errors.New("disk on fire")
	_, err := Open(&failingChannel{Channel: kv.NewMemory(), readErr: boom})
	assert.ErrorIs(t, err, boom)
}

func TestStore_WriteFailureKeepsMemoryState(t *testing.T) {
	boom := errors.New("read-only filesystem")
	s := New(&failingChannel{Channel: kv.NewMemory(), writeErr: boom})

	state, err := s.Add(dune)
	assert.ErrorIs(t, err, boom)
	assert.Len(t, state, 1)
	assert.True(t, s.Contains(dune))
}

func TestStore_CurrentIsACopy(t *testing.T) {
	s := New(kv.NewMemory())
	_, err := s.Add(dune)
	require.NoError(t, err)

	cur := s.Current()
	cur[0].Title = "Changed"
	assert.Equal(t, "Dune", s.Current()[0].Title)
}

func TestStore_CustomKey(t *testing.T) {
	ch := kv.NewMemory()
	s := New(ch, WithKey("mine"))
	_, err := s.Add(dune)
	require.NoError(t, err)

	_, ok, err := ch.Read("mine")
	require.NoError(t, err)
	assert.True(t, ok)
	_, ok, err = ch.Read(DefaultKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_AddRejectsUnreadableRecord(t *testing.T) {
	ch := &failingChannel{Channel: kv.NewMemory()}
	s := New(ch)
	_, err := s.Add(dune)
	require.NoError(t, err)
	writes := ch.writes

	state, err := s.Add(book.Record{Title: "Anon", Author: ""})
	assert.ErrorIs(t, err, book.ErrMissingAuthor)
	assert.Len(t, state, 1)
	_, err = s.Add(book.Record{Author: "Nobody"})
	assert.ErrorIs(t, err, book.ErrMissingTitle)
	assert.Equal(t, writes, ch.writes, "rejected records are not written")

	got, err := New(ch).Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"Dune/Herbert"}, titles(got))
}

func TestStore_NonFiniteLevelStillPersists(t *testing.T) {
	ch := kv.NewMemory()
	s := New(ch)

	odd := book.Record{Title: "Odd", Author: "Someone", ReadingLevel: book.ParseLevel("NaN")}
	_, err := s.Add(odd)
	require.NoError(t, err)
	_, err = s.Add(book.Record{Title: "Far", Author: "Someone", ReadingLevel: book.NumberLevel(math.Inf(1))})
	require.NoError(t, err)
	_, err = s.Add(dune)
	require.NoError(t, err)

	got, err := New(ch).Load()
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "NaN", got[0].ReadingLevel.String())
	assert.False(t, got[0].ReadingLevel.IsNumber())
	assert.Equal(t, "+Inf", got[1].ReadingLevel.String())
	assert.Equal(t, dune, got[2])
}
