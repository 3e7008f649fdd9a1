package receipt

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

const (
	recordsBucketName = "records"
	namesBucketName   = "names"
)

// BoltCache implements the Cache interface using BoltDB
type BoltCache struct {
	db *bbolt.DB
}

// NewBoltCache creates a new BoltCache instance
func NewBoltCache(path string) (*BoltCache, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	// Create buckets if they don't exist
	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(recordsBucketName)); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists([]byte(namesBucketName)); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &BoltCache{db: db}, nil
}

// Has reports whether a record with this base name exists
func (b *BoltCache) Has(name string) (bool, error) {
	var found bool
	err := b.db.View(func(tx *bbolt.Tx) error {
		found = tx.Bucket([]byte(namesBucketName)).Get([]byte(name)) != nil
		return nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// Append saves records under increasing sequence keys in one transaction
func (b *BoltCache) Append(records ...*Record) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(recordsBucketName))
		names := tx.Bucket([]byte(namesBucketName))
		for _, record := range records {
			seq, err := bucket.NextSequence()
			if err != nil {
				return fmt.Errorf("allocating record key: %w", err)
			}
			key := make([]byte, 8)
			binary.BigEndian.PutUint64(key, seq)

			data, err := json.Marshal(record)
			if err != nil {
				return fmt.Errorf("marshaling record: %w", err)
			}
			if err := bucket.Put(key, data); err != nil {
				return err
			}
			if err := names.Put([]byte(record.BaseName()), key); err != nil {
				return err
			}
		}
		return nil
	})
}

// All returns all records ordered by their sequence key
func (b *BoltCache) All() ([]*Record, error) {
	records := make([]*Record, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(recordsBucketName))
		return bucket.ForEach(func(k, v []byte) error {
			var record Record
			if err := json.Unmarshal(v, &record); err != nil {
				return fmt.Errorf("%w: unmarshaling record %x: %w", ErrCacheCorrupt, k, err)
			}
			records = append(records, &record)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Close closes the database connection
func (b *BoltCache) Close() error {
	return b.db.Close()
}
