package readinglist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/shelf/internal/kv"
)

func TestSession(t *testing.T) {
	sess := NewSession(New(kv.NewMemory()), catalog)

	assert.Len(t, sess.Search(""), len(catalog))
	hits := sess.Search("harry")
	require.Len(t, hits, 2)

	_, err := sess.Add(hits[0])
	require.NoError(t, err)
	assert.True(t, sess.Listed(hits[0]))
	assert.False(t, sess.Listed(hits[1]))
	assert.Len(t, sess.CurrentState(), 1)

	_, err = sess.Remove(hits[0].Title)
	require.NoError(t, err)
	assert.Empty(t, sess.CurrentState())
	assert.Equal(t, catalog, sess.Catalog())
}
