package readinglist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/shelf/internal/book"
)

func TestEncode_Empty(t *testing.T) {
	blob, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", blob)
}

func TestDecode_ReportsSchemaErrors(t *testing.T) {
	_, err := Decode(`[{"title":""},{"author":1},{},{},{}]`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match schema")
	assert.Contains(t, err.Error(), "more")
}

func TestEncodeDecode_WireFormat(t *testing.T) {
	blob, err := Encode([]book.Record{dune, matilda})
	require.NoError(t, err)
	assert.JSONEq(t, `[
	  {"title":"Dune","author":"Herbert","coverPhotoURL":"x","readingLevel":"YA"},
	  {"title":"Matilda","author":"Dahl","coverPhotoURL":"m.png","readingLevel":3}
	]`, blob)

	got, err := Decode(blob)
	require.NoError(t, err)
	assert.Equal(t, []book.Record{dune, matilda}, got)
}
