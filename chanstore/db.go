// Package chanstore is the persistence layer backing the deposit
// ledger, the dispute registry, and the per-channel Params table: a
// single bbolt-backed store, opened once at process start, with one
// bucket per concern, all access synchronous and exclusive per call.
package chanstore

import (
	"fmt"
	"os"
	"path/filepath"

	bolt "github.com/coreos/bbolt"
)

const (
	dbName           = "paychan.db"
	dbFilePermission = 0600
)

var (
	// holdingsBucket maps a (channel, participant) funding key to its
	// uint64 balance.
	holdingsBucket = []byte("holdings")

	// withdrawnBucket marks which funding keys have already withdrawn,
	// enforcing no double-withdrawal independently of the holdings value
	// itself.
	withdrawnBucket = []byte("withdrawn")

	// paramsBucket maps a channel id to its encoded Params, persisted at
	// first contact so withdraw can always recover the participant
	// ordering.
	paramsBucket = []byte("params")

	// registryBucket maps a channel id to its encoded RegisteredState.
	registryBucket = []byte("registry")

	// processedBlocksBucket records which opaque block indices have
	// already been applied, so transaction_notification is idempotent on
	// redelivery.
	processedBlocksBucket = []byte("processed-blocks")
)

// DB is the store backing every persistent map the core needs.
type DB struct {
	bolt   *bolt.DB
	dbPath string
}

// Open opens (creating if necessary) the bbolt-backed store at dbPath
// and ensures every bucket this package uses exists.
func Open(dbPath string) (*DB, error) {
	if err := os.MkdirAll(dbPath, 0700); err != nil {
		return nil, fmt.Errorf("chanstore: unable to create data dir: %w", err)
	}

	path := filepath.Join(dbPath, dbName)
	bdb, err := bolt.Open(path, dbFilePermission, nil)
	if err != nil {
		return nil, fmt.Errorf("chanstore: unable to open bbolt db: %w", err)
	}

	db := &DB{bolt: bdb, dbPath: dbPath}
	if err := db.initBuckets(); err != nil {
		bdb.Close()
		return nil, err
	}

	log.Infof("chanstore opened at %v", path)
	return db, nil
}

func (d *DB) initBuckets() error {
	return d.bolt.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{
			holdingsBucket, withdrawnBucket, paramsBucket,
			registryBucket, processedBlocksBucket,
		} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close releases the underlying bbolt file handle.
func (d *DB) Close() error {
	return d.bolt.Close()
}

// fundingKey is the canonical bbolt key for a Funding: the channel id
// followed by the participant key, 64 bytes total.
func fundingKey(channelID [32]byte, participant [32]byte) []byte {
	key := make([]byte, 64)
	copy(key[:32], channelID[:])
	copy(key[32:], participant[:])
	return key
}
