package fragcache

import (
	"errors"
	"time"

	"github.com/tidwall/buntdb"
)

// BuntStore is a Store backed by a buntdb database, which handles entry
// expiry itself. Pass ":memory:" as the path for an ephemeral cache, or a
// file path to keep fragments warm across restarts.
type BuntStore struct {
	db *buntdb.DB
}

// NewBuntStore opens the database at path and returns a Store over it.
func NewBuntStore(path string) (*BuntStore, error) {
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, err
	}
	return &BuntStore{db: db}, nil
}

// Get returns the fragment stored under key. Any backend error, not just a
// missing key, reports as a miss: the caller re-renders rather than failing.
func (b *BuntStore) Get(key string) (string, bool) {
	var fragment string
	err := b.db.View(func(tx *buntdb.Tx) error {
		val, err := tx.Get(key)
		if err != nil {
			return err
		}
		fragment = val
		return nil
	})
	if err != nil {
		return "", false
	}
	return fragment, true
}

// Set stores a fragment under key, expiring after ttl.
func (b *BuntStore) Set(key, fragment string, ttl time.Duration) error {
	return b.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(key, fragment, &buntdb.SetOptions{
			Expires: true,
			TTL:     ttl,
		})
		return err
	})
}

// Close closes the underlying database.
func (b *BuntStore) Close() error {
	err := b.db.Close()
	if errors.Is(err, buntdb.ErrDatabaseClosed) {
		return nil
	}
	return err
}
