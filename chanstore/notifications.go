package chanstore

import (
	"encoding/binary"

	bolt "github.com/coreos/bbolt"
)

// IsBlockProcessed reports whether blockIndex has already been applied
// to the holdings ledger, the guard that makes transaction_notification
// idempotent on redelivery.
func (d *DB) IsBlockProcessed(blockIndex uint64) (bool, error) {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, blockIndex)

	var processed bool
	err := d.bolt.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(processedBlocksBucket)
		processed = b.Get(key) != nil
		return nil
	})
	return processed, err
}

// MarkBlockProcessed records blockIndex as applied.
func (d *DB) MarkBlockProcessed(blockIndex uint64) error {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, blockIndex)

	return d.bolt.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(processedBlocksBucket)
		return b.Put(key, []byte{1})
	})
}
