package book

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Record describes one catalog book. Values are copied, never shared.
type Record struct {
	Title         string `json:"title" yaml:"title"`
	Author        string `json:"author" yaml:"author"`
	CoverPhotoURL string `json:"coverPhotoURL" yaml:"coverPhotoURL"`
	ReadingLevel  Level  `json:"readingLevel" yaml:"readingLevel"`
}

// Key is the reading-list identity of a record.
type Key struct {
	Title  string
	Author string
}

// Key returns the identity of r. Matching is exact and case-sensitive.
func (r Record) Key() Key {
	return Key{Title: r.Title, Author: r.Author}
}

// Same reports whether r and other are the same reading-list entry.
func (r Record) Same(other Record) bool {
	return r.Key() == other.Key()
}

var (
	ErrMissingTitle  = errors.New("book: title is required")
	ErrMissingAuthor = errors.New("book: author is required")
)

// Validate checks the fields a record must carry to be listed.
func (r Record) Validate() error {
	if r.Title == "" {
		return ErrMissingTitle
	}
	if r.Author == "" {
		return fmt.Errorf("%w (title %q)", ErrMissingAuthor, r.Title)
	}
	return nil
}

// Level is an opaque reading level. Catalogs send either a string ("YA",
// "A-C") or a number (4, 2.5); the original kind is kept so it round-trips.
type Level struct {
	text    string
	numeric bool
}

// TextLevel returns a string-valued level.
func TextLevel(s string) Level { return Level{text: s} }

// NumberLevel returns a number-valued level. NaN and the infinities have
// no JSON form, so they are kept as text.
func NumberLevel(f float64) Level {
	text := strconv.FormatFloat(f, 'f', -1, 64)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return TextLevel(text)
	}
	return Level{text: text, numeric: true}
}

// ParseLevel guesses the kind from user input: anything that parses as a
// finite number is numeric.
func ParseLevel(s string) Level {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return TextLevel(s)
	}
	return NumberLevel(f)
}

func (l Level) String() string { return l.text }

// IsNumber reports whether the level was supplied as a number.
func (l Level) IsNumber() bool { return l.numeric }

// IsZero reports whether no level was supplied.
func (l Level) IsZero() bool { return l.text == "" && !l.numeric }

func (l Level) MarshalJSON() ([]byte, error) {
	if l.numeric {
		return []byte(l.text), nil
	}
	return json.Marshal(l.text)
}

func (l *Level) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = Level{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = TextLevel(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("book: readingLevel must be a string or number: %w", err)
	}
	*l = Level{text: n.String(), numeric: true}
	return nil
}

func (l Level) MarshalYAML() (any, error) {
	if l.numeric {
		f, err := strconv.ParseFloat(l.text, 64)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	return l.text, nil
}

func (l *Level) UnmarshalYAML(unmarshal func(any) error) error {
	var v any
	if err := unmarshal(&v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		*l = Level{}
	case string:
		*l = TextLevel(t)
	case int:
		*l = NumberLevel(float64(t))
	case int64:
		*l = NumberLevel(float64(t))
	case float64:
		*l = NumberLevel(t)
	default:
		return fmt.Errorf("book: readingLevel must be a string or number, got %T", v)
	}
	return nil
}

// Float returns a numeric level's value.
func (l Level) Float() (float64, error) {
	return strconv.ParseFloat(l.text, 64)
}
