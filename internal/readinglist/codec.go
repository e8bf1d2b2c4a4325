package readinglist

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jeanpaul/shelf/internal/book"
)

// snapshotSchema describes the persisted blob: a JSON array of book
// objects. Extra properties (e.g. a GraphQL __typename) are tolerated.
const snapshotSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["title", "author"],
    "properties": {
      "title":         {"type": "string", "minLength": 1},
      "author":        {"type": "string", "minLength": 1},
      "coverPhotoURL": {"type": "string"},
      "readingLevel":  {"type": ["string", "number", "null"]}
    }
  }
}`

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(snapshotSchema))
	})
	return schema, schemaErr
}

// Encode serializes the whole list. A nil list encodes as [].
func Encode(entries []book.Record) (string, error) {
	if entries == nil {
		entries = []book.Record{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("encode reading list: %w", err)
	}
	return string(data), nil
}

// Decode parses a persisted blob, checking it against the snapshot schema
// before unmarshalling.
func Decode(blob string) ([]book.Record, error) {
	s, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("invalid schema definition: %w", err)
	}

	result, err := s.Validate(gojsonschema.NewStringLoader(blob))
	if err != nil {
		// not JSON at all
		return nil, fmt.Errorf("parse reading list: %w", err)
	}
	if !result.Valid() {
		var errs []string
		for _, desc := range result.Errors() {
			errs = append(errs, desc.String())
		}
		return nil, fmt.Errorf("reading list does not match schema: %s", dumpErrors(errs))
	}

	var entries []book.Record
	if err := json.Unmarshal([]byte(blob), &entries); err != nil {
		return nil, fmt.Errorf("parse reading list: %w", err)
	}
	if entries == nil {
		entries = []book.Record{}
	}
	return entries, nil
}

// dumpErrors keeps the first three schema errors.
func dumpErrors(errs []string) string {
	if len(errs) > 3 {
		return strings.Join(errs[:3], "; ") + fmt.Sprintf("; ... and %d more", len(errs)-3)
	}
	return strings.Join(errs, "; ")
}
