package chanstore

import (
	"bytes"
	"encoding/binary"

	bolt "github.com/coreos/bbolt"

	"github.com/breez/paychan/channel"
)

func encodeRegistered(rs channel.RegisteredState) ([]byte, error) {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.BigEndian, rs.Timeout); err != nil {
		return nil, err
	}
	if err := channel.EncodeState(&buf, rs.State); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeRegistered(raw []byte) (channel.RegisteredState, error) {
	var rs channel.RegisteredState
	r := bytes.NewReader(raw)
	if err := binary.Read(r, binary.BigEndian, &rs.Timeout); err != nil {
		return rs, err
	}
	state, err := channel.DecodeState(r)
	if err != nil {
		return rs, err
	}
	rs.State = state
	return rs, nil
}

// PutRegistered overwrites the registered state for a channel,
// unconditionally. Callers (package dispute) are responsible for
// enforcing the monotone-version and timeout rules before calling this.
func (d *DB) PutRegistered(channelID channel.ChannelID, rs channel.RegisteredState) error {
	encoded, err := encodeRegistered(rs)
	if err != nil {
		return err
	}
	return d.bolt.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(registryBucket)
		return b.Put(channelID[:], encoded)
	})
}

// GetRegistered returns the currently registered state for channelID,
// if any.
func (d *DB) GetRegistered(channelID channel.ChannelID) (rs channel.RegisteredState, ok bool, err error) {
	err = d.bolt.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(registryBucket)
		raw := b.Get(channelID[:])
		if raw == nil {
			return nil
		}
		decoded, decErr := decodeRegistered(raw)
		if decErr != nil {
			return decErr
		}
		rs, ok = decoded, true
		return nil
	})
	return rs, ok, err
}
