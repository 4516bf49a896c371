package chanstore

import (
	bolt "github.com/coreos/bbolt"

	"github.com/breez/paychan/channel"
)

// IsWithdrawn reports whether funding has already been withdrawn.
func (d *DB) IsWithdrawn(funding channel.Funding) (bool, error) {
	key := fundingKey(funding.Channel, funding.Participant)
	var withdrawn bool
	err := d.bolt.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(withdrawnBucket)
		withdrawn = b.Get(key) != nil
		return nil
	})
	return withdrawn, err
}

// MarkWithdrawn and ClearWithdrawn are the two halves of the withdrawal
// reservation: MarkWithdrawn is set as part of the reservation, and
// ClearWithdrawn undoes it if the downstream transfer fails.
func (d *DB) MarkWithdrawn(funding channel.Funding) error {
	key := fundingKey(funding.Channel, funding.Participant)
	return d.bolt.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(withdrawnBucket)
		return b.Put(key, []byte{1})
	})
}

// ClearWithdrawn removes the withdrawn marker, used only to roll back a
// reservation whose downstream transfer failed.
func (d *DB) ClearWithdrawn(funding channel.Funding) error {
	key := fundingKey(funding.Channel, funding.Participant)
	return d.bolt.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(withdrawnBucket)
		return b.Delete(key)
	})
}
