package health

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/jeanpaul/shelf/internal/catalog"
	"github.com/jeanpaul/shelf/internal/kv"
)

type Status struct {
	Target    string
	Reachable bool
	Books     int
	Bytes     int
	Error     string
	Latency   time.Duration
}

// CheckCatalog fetches the catalog once and reports how it went.
func CheckCatalog(ctx context.Context, src catalog.Source) Status {
	s := Status{Target: src.Name()}
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	recs, err := src.Fetch(ctx)
	s.Latency = time.Since(start)
	if err != nil {
		s.Error = err.Error()
		return s
	}
	s.Reachable = true
	s.Books = len(recs)
	return s
}

// CheckStorage opens the persistence backend and reads key without
// writing anything. A bolt database is opened read-only so the check never
// creates the file or its bucket.
func CheckStorage(backend, path, key string) Status {
	s := Status{Target: backend}
	if path != "" && backend != kv.BackendMemory {
		s.Target = backend + " " + path
	}
	start := time.Now()

	var (
		ch  kv.Channel
		err error
	)
	if backend == kv.BackendBolt {
		if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
			s.Reachable = true
			s.Latency = time.Since(start)
			return s
		}
		ch, err = kv.OpenBoltReadOnly(path)
	} else {
		ch, err = kv.Open(backend, path)
	}
	if err != nil {
		s.Error = err.Error()
		return s
	}
	defer ch.Close()

	v, _, err := ch.Read(key)
	s.Latency = time.Since(start)
	if err != nil {
		s.Error = err.Error()
		return s
	}
	s.Reachable = true
	s.Bytes = len(v)
	return s
}
