package kv

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/boltdb/bolt"
)

var _ Channel = (*Bolt)(nil)

var bucketName = []byte("readinglist")

// Bolt stores values in a single bucket of a bolt database.
type Bolt struct {
	db *bolt.DB
}

// OpenBolt opens (or creates) the database at path. Bolt takes an exclusive
// file lock, so a second process waits at most one second before failing.
func OpenBolt(path string) (*Bolt, error) {
	if path == "" {
		return nil, fmt.Errorf("kv: bolt backend requires a path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("kv: create %s: %w", filepath.Dir(path), err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("kv: open %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketName); err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Bolt{db: db}, nil
}

// OpenBoltReadOnly opens an existing database under a shared lock. It never
// creates the file or the bucket, and every Write fails.
func OpenBoltReadOnly(path string) (*Bolt, error) {
	if path == "" {
		return nil, fmt.Errorf("kv: bolt backend requires a path")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("kv: open %s: %w", path, err)
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{ReadOnly: true, Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("kv: open %s: %w", path, err)
	}
	return &Bolt{db: db}, nil
}

func (b *Bolt) Read(key string) (string, bool, error) {
	var (
		value string
		ok    bool
	)
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketName)
		if bucket == nil {
			return nil
		}
		data := bucket.Get([]byte(key))
		if data == nil {
			return nil
		}
		// data is only valid inside the transaction
		value, ok = string(data), true
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("kv: read %q: %w", key, err)
	}
	return value, ok, nil
}

func (b *Bolt) Write(key, value string) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("kv: write %q: %w", key, err)
	}
	return nil
}

func (b *Bolt) Close() error {
	return b.db.Close()
}
