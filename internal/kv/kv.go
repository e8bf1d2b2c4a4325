package kv

import (
	"errors"
	"fmt"
)

// Channel is a synchronous key/value store holding whole string values.
type Channel interface {
	// Read returns the value stored under key. ok is false when nothing
	// has been written yet.
	Read(key string) (value string, ok bool, err error)

	// Write replaces the value stored under key.
	Write(key, value string) error

	Close() error
}

const (
	BackendFile   = "file"
	BackendBolt   = "bolt"
	BackendMemory = "memory"
)

var ErrClosed = errors.New("kv: channel closed")

// Open returns the channel for the named backend. path is ignored by the
// memory backend.
func Open(backend, path string) (Channel, error) {
	switch backend {
	case BackendFile, "":
		return NewFile(path)
	case BackendBolt:
		return OpenBolt(path)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("kv: unknown backend %q (must be file, bolt, or memory)", backend)
	}
}
