package chanstore

import (
	"encoding/binary"

	bolt "github.com/coreos/bbolt"

	"github.com/breez/paychan/channel"
)

func getUint64(b *bolt.Bucket, key []byte) (uint64, bool) {
	v := b.Get(key)
	if v == nil {
		return 0, false
	}
	return binary.BigEndian.Uint64(v), true
}

func putUint64(b *bolt.Bucket, key []byte, value uint64) error {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, value)
	return b.Put(key, buf)
}

// AddHolding additively credits amount to funding's balance, saturating
// on overflow by capping rather than wrapping (the deposit ledger
// accumulates real-world amounts far below uint64's range in practice,
// but the check guards the invariant regardless).
func (d *DB) AddHolding(funding channel.Funding, amount uint64) error {
	key := fundingKey(funding.Channel, funding.Participant)
	return d.bolt.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(holdingsBucket)
		current, _ := getUint64(b, key)
		next := current + amount
		if next < current {
			next = ^uint64(0)
		}
		return putUint64(b, key, next)
	})
}

// GetHolding returns funding's current balance. ok is false when the
// funding has never been credited.
func (d *DB) GetHolding(funding channel.Funding) (amount uint64, ok bool, err error) {
	key := fundingKey(funding.Channel, funding.Participant)
	err = d.bolt.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(holdingsBucket)
		amount, ok = getUint64(b, key)
		return nil
	})
	return amount, ok, err
}

// SetHolding overwrites funding's balance outright. It is used by the
// withdrawal path's reserve/rollback dance and should not be used for
// ordinary deposits, which must go through AddHolding.
func (d *DB) SetHolding(funding channel.Funding, amount uint64) error {
	key := fundingKey(funding.Channel, funding.Participant)
	return d.bolt.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(holdingsBucket)
		return putUint64(b, key, amount)
	})
}

// TotalHoldings sums the current holdings of every participant named in
// params: the figure an allocation must not exceed.
func (d *DB) TotalHoldings(channelID [32]byte, participants []channel.ParticipantKey) (uint64, error) {
	var total uint64
	err := d.bolt.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(holdingsBucket)
		for _, p := range participants {
			amount, _ := getUint64(b, fundingKey(channelID, p))
			total += amount
		}
		return nil
	})
	return total, err
}
