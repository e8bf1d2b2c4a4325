package book

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestKey_CaseSensitive(t *testing.T) {
	a := Record{Title: "Dune", Author: "Herbert"}
	b := Record{Title: "dune", Author: "Herbert"}
	c := Record{Title: "Dune", Author: "Herbert", CoverPhotoURL: "x", ReadingLevel: TextLevel("YA")}

	assert.False(t, a.Same(b))
	assert.True(t, a.Same(c), "cover and level are not part of identity")
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, Record{Author: "A"}.Validate(), ErrMissingTitle)
	assert.ErrorIs(t, Record{Title: "T"}.Validate(), ErrMissingAuthor)
	assert.NoError(t, Record{Title: "T", Author: "A"}.Validate())
}

func TestLevel_JSONKeepsKind(t *testing.T) {
	var recs []Record
	raw := `[{"title":"A","author":"x","coverPhotoURL":"","readingLevel":"YA"},
	         {"title":"B","author":"y","coverPhotoURL":"","readingLevel":4}]`
	require.NoError(t, json.Unmarshal([]byte(raw), &recs))

	assert.False(t, recs[0].ReadingLevel.IsNumber())
	assert.Equal(t, "YA", recs[0].ReadingLevel.String())
	assert.True(t, recs[1].ReadingLevel.IsNumber())
	assert.Equal(t, "4", recs[1].ReadingLevel.String())

	out, err := json.Marshal(recs[1])
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"B","author":"y","coverPhotoURL":"","readingLevel":4}`, string(out))
}

func TestLevel_JSONRejectsObjects(t *testing.T) {
	var l Level
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &l))
}

func TestLevel_YAML(t *testing.T) {
	var recs []Record
	src := `
- title: Dune
  author: Herbert
  readingLevel: YA
- title: Matilda
  author: Dahl
  readingLevel: 3.5
`
	require.NoError(t, yaml.Unmarshal([]byte(src), &recs))
	require.Len(t, recs, 2)
	assert.Equal(t, TextLevel("YA"), recs[0].ReadingLevel)
	assert.Equal(t, NumberLevel(3.5), recs[1].ReadingLevel)
}

func TestParseLevel(t *testing.T) {
	assert.True(t, ParseLevel("7").IsNumber())
	assert.False(t, ParseLevel("H").IsNumber())
	assert.True(t, Level{}.IsZero())
}

func TestLevel_NonFiniteIsText(t *testing.T) {
	for _, in := range []string{"NaN", "nan", "inf", "-Inf", "Infinity"} {
		l := ParseLevel(in)
		assert.False(t, l.IsNumber(), in)
		assert.Equal(t, in, l.String())

		data, err := json.Marshal(l)
		require.NoError(t, err, in)
		assert.True(t, json.Valid(data), in)
	}

	var r Record
	require.NoError(t, yaml.Unmarshal([]byte("title: Odd\nauthor: Someone\nreadingLevel: .nan\n"), &r))
	assert.False(t, r.ReadingLevel.IsNumber())
	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Odd","author":"Someone","coverPhotoURL":"","readingLevel":"NaN"}`, string(data))

	require.NoError(t, yaml.Unmarshal([]byte("readingLevel: -.inf\n"), &r))
	assert.Equal(t, "-Inf", r.ReadingLevel.String())
	assert.False(t, r.ReadingLevel.IsNumber())
}
