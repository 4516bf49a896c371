package channel

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// byteOrder is the fixed wire order for every integer this package
// encodes, the same choice channeldb/channel.go makes for its own
// on-disk encoding.
var byteOrder = binary.BigEndian

// writeElement writes a single field: a fixed-width integer, bool or
// 32-byte array, or a uint32-length-prefixed byte slice. Unlike channeldb's
// variant (which dispatches on many wire types: channel points, public
// keys, HTLCs...), this protocol's alphabet is small enough to enumerate
// directly.
func writeElement(w io.Writer, element interface{}) error {
	switch e := element.(type) {
	case uint64:
		return binary.Write(w, byteOrder, e)
	case bool:
		var b uint8
		if e {
			b = 1
		}
		return binary.Write(w, byteOrder, b)
	case [HashSize]byte:
		_, err := w.Write(e[:])
		return err
	case []byte:
		if err := binary.Write(w, byteOrder, uint32(len(e))); err != nil {
			return err
		}
		_, err := w.Write(e)
		return err
	default:
		return fmt.Errorf("channel: unsupported encode type %T", element)
	}
}

func writeElements(w io.Writer, elements ...interface{}) error {
	for _, e := range elements {
		if err := writeElement(w, e); err != nil {
			return err
		}
	}
	return nil
}

// EncodeParams produces the canonical byte encoding of Params: the
// nonce, the length-prefixed participant list, then the challenge
// duration. Field order is fixed and never optional.
func EncodeParams(w io.Writer, p Params) error {
	if err := writeElement(w, [HashSize]byte(p.Nonce)); err != nil {
		return err
	}
	if err := binary.Write(w, byteOrder, uint32(len(p.Participants))); err != nil {
		return err
	}
	for _, part := range p.Participants {
		if err := writeElement(w, [HashSize]byte(part)); err != nil {
			return err
		}
	}
	return writeElement(w, p.ChallengeDuration)
}

// EncodeState produces the canonical byte encoding of a State: channel
// id, version, length-prefixed allocation, finalized flag.
func EncodeState(w io.Writer, s State) error {
	if err := writeElement(w, [HashSize]byte(s.Channel)); err != nil {
		return err
	}
	if err := writeElement(w, s.Version); err != nil {
		return err
	}
	if err := binary.Write(w, byteOrder, uint32(len(s.Allocation))); err != nil {
		return err
	}
	for _, a := range s.Allocation {
		if err := writeElement(w, a); err != nil {
			return err
		}
	}
	return writeElement(w, s.Finalized)
}

// EncodeWithdrawalRequest produces the canonical byte encoding of a
// WithdrawalRequest: channel id, participant key, length-prefixed
// receiver bytes.
func EncodeWithdrawalRequest(w io.Writer, req WithdrawalRequest) error {
	if err := writeElement(w, [HashSize]byte(req.Funding.Channel)); err != nil {
		return err
	}
	if err := writeElement(w, [HashSize]byte(req.Funding.Participant)); err != nil {
		return err
	}
	return writeElement(w, []byte(req.Receiver))
}

// marshal runs an Encode* function against a fresh buffer and returns
// the resulting bytes, the shape every hash/sign call in this package
// needs.
func marshal(encode func(io.Writer) error) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
