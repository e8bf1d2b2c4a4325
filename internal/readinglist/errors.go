package readinglist

import "fmt"

// CorruptStateError reports a persisted reading list that could not be
// parsed. The store recovers by starting from an empty list.
type CorruptStateError struct {
	Key string
	Err error
}

func (e *CorruptStateError) Error() string {
	return fmt.Sprintf("reading list %q is corrupt: %v", e.Key, e.Err)
}

func (e *CorruptStateError) Unwrap() error { return e.Err }
