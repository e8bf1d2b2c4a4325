package health

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/shelf/internal/book"
	"github.com/jeanpaul/shelf/internal/kv"
)

type stubSource struct {
	recs []book.Record
	err  error
}

func (s stubSource) Name() string { return "stub" }

func (s stubSource) Fetch(ctx context.Context) ([]book.Record, error) { return s.recs, s.err }

func TestCheckCatalog(t *testing.T) {
	st := CheckCatalog(context.Background(), stubSource{recs: []book.Record{{Title: "Dune", Author: "Herbert"}}})
	assert.True(t, st.Reachable)
	assert.Equal(t, 1, st.Books)
	assert.Equal(t, "stub", st.Target)

	st = CheckCatalog(context.Background(), stubSource{err: errors.New("connection refused")})
	assert.False(t, st.Reachable)
	assert.Contains(t, st.Error, "connection refused")
}

func TestCheckStorage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shelf.json")

	f, err := kv.NewFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Write("readingList", "[]"))

	st := CheckStorage(kv.BackendFile, path, "readingList")
	assert.True(t, st.Reachable)
	assert.Equal(t, 2, st.Bytes)

	st = CheckStorage(kv.BackendBolt, filepath.Join(dir, "missing.db"), "readingList")
	assert.True(t, st.Reachable)
	assert.NoFileExists(t, filepath.Join(dir, "missing.db"))

	db := filepath.Join(dir, "shelf.db")
	b, err := kv.OpenBolt(db)
	require.NoError(t, err)
	require.NoError(t, b.Write("readingList", "[]"))
	require.NoError(t, b.Close())
	before, err := os.Stat(db)
	require.NoError(t, err)

	st = CheckStorage(kv.BackendBolt, db, "readingList")
	assert.True(t, st.Reachable, st.Error)
	assert.Equal(t, 2, st.Bytes)
	after, err := os.Stat(db)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime(), "the database is not written")
	assert.Equal(t, before.Size(), after.Size())

	st = CheckStorage("redis", "", "readingList")
	assert.False(t, st.Reachable)
	assert.NotEmpty(t, st.Error)
}
