// Package storage keeps chunks removed from PNG files so they can be restored.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
	"github.com/ssargent/pngme/pkg/png"
)

// ErrNotFound is returned for an unknown stash ID
var ErrNotFound = errors.New("stash entry not found")

// Entry is one stashed chunk
type Entry struct {
	ID        ksuid.KSUID
	Source    string
	RemovedAt time.Time
	Chunk     *png.Chunk
}

type record struct {
	Source    string    `json:"source"`
	RemovedAt time.Time `json:"removed_at"`
	Chunk     []byte    `json:"chunk"`
}

// Stash is a pebble-backed store of removed chunks keyed by ksuid. Keys sort
// by creation time, so iteration returns entries oldest first.
type Stash struct {
	db *pebble.DB
}

// Open opens or creates a stash in dir
func Open(dir string) (*Stash, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open stash %s: %w", dir, err)
	}
	return &Stash{db: db}, nil
}

// Put stores c, removed from the file at source, and returns its ID
func (s *Stash) Put(source string, c *png.Chunk) (ksuid.KSUID, error) {
	id := ksuid.New()
	value, err := json.Marshal(record{
		Source:    source,
		RemovedAt: id.Time().UTC(),
		Chunk:     c.Bytes(),
	})
	if err != nil {
		return ksuid.Nil, fmt.Errorf("failed to encode stash entry: %w", err)
	}

	if err := s.db.Set(id.Bytes(), value, pebble.Sync); err != nil {
		return ksuid.Nil, fmt.Errorf("failed to write stash entry: %w", err)
	}
	return id, nil
}

// Get returns the entry stored under id
func (s *Stash) Get(id ksuid.KSUID) (*Entry, error) {
	value, closer, err := s.db.Get(id.Bytes())
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read stash entry %s: %w", id, err)
	}
	defer closer.Close()

	return decodeEntry(id, value)
}

// Delete removes the entry stored under id
func (s *Stash) Delete(id ksuid.KSUID) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.db.Delete(id.Bytes(), pebble.Sync); err != nil {
		return fmt.Errorf("failed to delete stash entry %s: %w", id, err)
	}
	return nil
}

// List returns every entry, oldest first
func (s *Stash) List() ([]*Entry, error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate stash: %w", err)
	}

	var entries []*Entry
	for valid := iter.First(); valid; valid = iter.Next() {
		id, err := ksuid.FromBytes(iter.Key())
		if err != nil {
			_ = iter.Close()
			return nil, fmt.Errorf("invalid stash key %x: %w", iter.Key(), err)
		}
		entry, err := decodeEntry(id, iter.Value())
		if err != nil {
			_ = iter.Close()
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("failed to iterate stash: %w", err)
	}
	return entries, nil
}

// Close closes the underlying database
func (s *Stash) Close() error {
	return s.db.Close()
}

// decodeEntry copies out of value, which pebble only lends until the next call.
func decodeEntry(id ksuid.KSUID, value []byte) (*Entry, error) {
	var rec record
	if err := json.Unmarshal(value, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode stash entry %s: %w", id, err)
	}

	c, _, err := png.ParseChunk(rec.Chunk)
	if err != nil {
		return nil, fmt.Errorf("corrupt stash entry %s: %w", id, err)
	}

	return &Entry{
		ID:        id,
		Source:    rec.Source,
		RemovedAt: rec.RemovedAt,
		Chunk:     c,
	}, nil
}
