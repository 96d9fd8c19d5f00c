package git

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"
)

var errCacheMiss = errors.New("cache miss")

// BoltCache persists change sets in a bbolt database.
// Commit identifiers are content hashes, so an entry stays valid across sessions.
// Each repository gets its own bucket; Clear drops only that bucket.
type BoltCache struct {
	db     *bolt.DB
	bucket []byte
	logger logrus.FieldLogger
}

// OpenBoltCache opens (or creates) the database at path and scopes it to repoKey.
func OpenBoltCache(path, repoKey string, logger logrus.FieldLogger) (*BoltCache, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open cache %s: %w", path, err)
	}
	return NewBoltCache(db, repoKey, logger), nil
}

// NewBoltCache wraps an already open database.
func NewBoltCache(db *bolt.DB, repoKey string, logger logrus.FieldLogger) *BoltCache {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &BoltCache{
		db:     db,
		bucket: []byte("changes:" + repoKey),
		logger: logger,
	}
}

// Get reads cached changes for oid.
func (c *BoltCache) Get(oid string) ([]FileChange, bool) {
	var changes []FileChange
	err := c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(c.bucket)
		if b == nil {
			return errCacheMiss
		}
		data := b.Get([]byte(oid))
		if data == nil {
			return errCacheMiss
		}
		decoded, err := decodeChanges(data)
		if err != nil {
			return err
		}
		changes = decoded
		return nil
	})
	if err != nil {
		if !errors.Is(err, errCacheMiss) {
			c.logger.WithError(err).WithField("oid", oid).Warn("Failed to read cached change set")
		}
		return nil, false
	}
	return changes, true
}

// Put stores changes for oid. Write failures are logged, not returned.
func (c *BoltCache) Put(oid string, changes []FileChange) {
	err := c.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(c.bucket)
		if err != nil {
			return err
		}
		data, err := encodeChanges(changes)
		if err != nil {
			return err
		}
		return b.Put([]byte(oid), data)
	})
	if err != nil {
		c.logger.WithError(err).WithField("oid", oid).Warn("Failed to persist change set")
	}
}

// Clear drops the repository's bucket.
func (c *BoltCache) Clear() {
	err := c.db.Update(func(tx *bolt.Tx) error {
		err := tx.DeleteBucket(c.bucket)
		if errors.Is(err, bolt.ErrBucketNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		c.logger.WithError(err).Warn("Failed to clear change cache")
	}
}

// Close closes the underlying database.
func (c *BoltCache) Close() error {
	return c.db.Close()
}
