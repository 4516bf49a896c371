package channel

import (
	"encoding/binary"
	"io"
)

func readUint32(r io.Reader) (uint32, error) {
	var v uint32
	if err := binary.Read(r, byteOrder, &v); err != nil {
		return 0, err
	}
	return v, nil
}

func readUint64(r io.Reader) (uint64, error) {
	var v uint64
	if err := binary.Read(r, byteOrder, &v); err != nil {
		return 0, err
	}
	return v, nil
}

func readHash(r io.Reader) ([HashSize]byte, error) {
	var h [HashSize]byte
	if _, err := io.ReadFull(r, h[:]); err != nil {
		return h, err
	}
	return h, nil
}

func readBool(r io.Reader) (bool, error) {
	var b uint8
	if err := binary.Read(r, byteOrder, &b); err != nil {
		return false, err
	}
	return b != 0, nil
}

func readBytes(r io.Reader) ([]byte, error) {
	n, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if n > 0 {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
	}
	return buf, nil
}

// DecodeParams reverses EncodeParams. It is the persistence-layer
// counterpart used to reconstruct Params for a channel that was
// encountered on a prior call.
func DecodeParams(r io.Reader) (Params, error) {
	var p Params

	nonce, err := readHash(r)
	if err != nil {
		return p, err
	}
	p.Nonce = Nonce(nonce)

	count, err := readUint32(r)
	if err != nil {
		return p, err
	}
	p.Participants = make([]ParticipantKey, count)
	for i := range p.Participants {
		key, err := readHash(r)
		if err != nil {
			return p, err
		}
		p.Participants[i] = ParticipantKey(key)
	}

	p.ChallengeDuration, err = readUint64(r)
	if err != nil {
		return p, err
	}
	return p, nil
}

// DecodeState reverses EncodeState.
func DecodeState(r io.Reader) (State, error) {
	var s State

	channelID, err := readHash(r)
	if err != nil {
		return s, err
	}
	s.Channel = ChannelID(channelID)

	s.Version, err = readUint64(r)
	if err != nil {
		return s, err
	}

	count, err := readUint32(r)
	if err != nil {
		return s, err
	}
	s.Allocation = make([]uint64, count)
	for i := range s.Allocation {
		a, err := readUint64(r)
		if err != nil {
			return s, err
		}
		s.Allocation[i] = a
	}

	s.Finalized, err = readBool(r)
	if err != nil {
		return s, err
	}
	return s, nil
}

// DecodeWithdrawalRequest reverses EncodeWithdrawalRequest.
func DecodeWithdrawalRequest(r io.Reader) (WithdrawalRequest, error) {
	var req WithdrawalRequest

	channelID, err := readHash(r)
	if err != nil {
		return req, err
	}
	req.Funding.Channel = ChannelID(channelID)

	participant, err := readHash(r)
	if err != nil {
		return req, err
	}
	req.Funding.Participant = ParticipantKey(participant)

	receiver, err := readBytes(r)
	if err != nil {
		return req, err
	}
	req.Receiver = Principal(receiver)
	return req, nil
}

// MarshalParams encodes p to bytes, the form chanstore persists.
func MarshalParams(p Params) ([]byte, error) {
	return marshal(func(w io.Writer) error { return EncodeParams(w, p) })
}

// MarshalState encodes s to bytes.
func MarshalState(s State) ([]byte, error) {
	return marshal(func(w io.Writer) error { return EncodeState(w, s) })
}
