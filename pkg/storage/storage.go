// Package storage keeps encoded record buffers in a pebble database, keyed by
// KSUIDs so that listing returns buffers roughly in the order they were
// archived.
package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
)

// ErrNotFound is returned when no buffer is stored under an id
var ErrNotFound = errors.New("buffer not found")

// Entry describes one archived buffer
type Entry struct {
	ID      ksuid.KSUID
	Size    int
	Created time.Time
}

// Archive is a pebble-backed buffer store
type Archive struct {
	db *pebble.DB
}

// OpenArchive opens or creates an archive in dir
func OpenArchive(dir string) (*Archive, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", dir, err)
	}
	return &Archive{db: db}, nil
}

// Put stores a copy of buf and returns its id
func (a *Archive) Put(buf []byte) (ksuid.KSUID, error) {
	id := ksuid.New()
	if err := a.db.Set(id.Bytes(), buf, pebble.Sync); err != nil {
		return ksuid.Nil, err
	}
	return id, nil
}

// Get returns the buffer stored under id
func (a *Archive) Get(id ksuid.KSUID) ([]byte, error) {
	data, closer, err := a.db.Get(id.Bytes())
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}
	defer closer.Close()

	// data is only valid until closer.Close
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Replace overwrites the buffer stored under id
func (a *Archive) Replace(id ksuid.KSUID, buf []byte) error {
	if _, err := a.Get(id); err != nil {
		return err
	}
	return a.db.Set(id.Bytes(), buf, pebble.Sync)
}

// Delete removes the buffer stored under id
func (a *Archive) Delete(id ksuid.KSUID) error {
	return a.db.Delete(id.Bytes(), pebble.Sync)
}

// List returns all archived buffers ordered by id. KSUIDs sort by creation
// time, to the second.
func (a *Archive) List() ([]Entry, error) {
	iter, err := a.db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for iter.First(); iter.Valid(); iter.Next() {
		id, err := ksuid.FromBytes(iter.Key())
		if err != nil {
			iter.Close()
			return nil, fmt.Errorf("corrupt archive key %x: %w", iter.Key(), err)
		}
		entries = append(entries, Entry{
			ID:      id,
			Size:    len(iter.Value()),
			Created: id.Time(),
		})
	}

	if err := iter.Close(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Close closes the archive
func (a *Archive) Close() error {
	return a.db.Close()
}
