package chanstore

import (
	"bytes"

	bolt "github.com/coreos/bbolt"

	"github.com/breez/paychan/channel"
)

// PutParams persists params under its own channel id, if not already
// present. The entry points that receive Params (dispute and conclude)
// call this so withdraw can later recover the ordered participant list;
// deposit only sees a Funding and does not persist Params.
func (d *DB) PutParams(channelID channel.ChannelID, params channel.Params) error {
	encoded, err := channel.MarshalParams(params)
	if err != nil {
		return err
	}
	return d.bolt.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(paramsBucket)
		if existing := b.Get(channelID[:]); existing != nil {
			return nil
		}
		return b.Put(channelID[:], encoded)
	})
}

// GetParams returns the Params previously persisted for channelID.
func (d *DB) GetParams(channelID channel.ChannelID) (params channel.Params, ok bool, err error) {
	err = d.bolt.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(paramsBucket)
		raw := b.Get(channelID[:])
		if raw == nil {
			return nil
		}
		p, decErr := channel.DecodeParams(bytes.NewReader(raw))
		if decErr != nil {
			return decErr
		}
		params, ok = p, true
		return nil
	})
	return params, ok, err
}
