// Package channel defines the core data model of the payment-channel
// protocol (Params, State, FullySignedState, Funding, WithdrawalRequest),
// its canonical binary encoding, and the hash/id derivations built on top
// of that encoding. The encoding is the compatibility surface with
// off-chain signers: fixed field order, fixed-width big-endian integers,
// length-prefixed sequences, no optional fields.
package channel

import (
	"encoding/hex"
)

// HashSize is the width of every hash and public key in this protocol.
const HashSize = 32

// Hash is a 32-byte digest produced by the deployment-fixed hash function.
// It is used both as a ChannelID and as the message digest signed by
// participants.
type Hash [HashSize]byte

func (h Hash) String() string { return hex.EncodeToString(h[:]) }

// Bytes returns the hash as a byte slice.
func (h Hash) Bytes() []byte { return h[:] }

// ParticipantKey is an Ed25519 public key identifying an off-chain
// participant.
type ParticipantKey [HashSize]byte

func (k ParticipantKey) String() string { return hex.EncodeToString(k[:]) }

// Bytes returns the key as a byte slice.
func (k ParticipantKey) Bytes() []byte { return k[:] }

// Principal is an opaque host-level identity used to authorize
// withdrawals to an on-chain recipient. Its concrete shape is owned by
// the host runtime; the core only ever compares, encodes and hashes it
// as an opaque byte string.
type Principal []byte

// Nonce disambiguates channel instances that share the same participants
// and challenge duration.
type Nonce [HashSize]byte

// ChannelID is the 32-byte hash of a channel's encoded Params
// (channel_id = H(encode(Params))). It is an alias of Hash, not a
// distinct type; the separate name exists for documentation only.
type ChannelID = Hash

// Params are the immutable parameters of a channel for its entire
// lifetime. They determine ChannelID.
type Params struct {
	Nonce             Nonce
	Participants      []ParticipantKey
	ChallengeDuration uint64 // seconds; 0 means no contestation window
}

// State is a versioned, co-signed redistribution of a channel's funds.
type State struct {
	Channel    ChannelID
	Version    uint64
	Allocation []uint64
	Finalized  bool
}

// FullySignedState pairs a State with one signature per participant, in
// participant order. Each Sigs[i] must be Participants[i]'s signature
// over state_hash(State).
type FullySignedState struct {
	State State
	Sigs  [][]byte
}

// Funding keys the deposit ledger: a balance belongs to exactly one
// (channel, participant) pair.
type Funding struct {
	Channel     ChannelID
	Participant ParticipantKey
}

// WithdrawalRequest binds a funding entry to the on-chain recipient the
// participant has chosen. It is authenticated by a participant signature
// over wdreq_hash(WithdrawalRequest), which prevents replaying the same
// signature against a different receiver.
type WithdrawalRequest struct {
	Funding  Funding
	Receiver Principal
}

// RegisteredState is the registry's record of the latest dispute or
// conclusion for a channel, along with the absolute timeout at which it
// becomes immutable.
type RegisteredState struct {
	State   State
	Timeout int64 // unix seconds
}

// Terminal reports whether the registered state is settled: either
// directly finalized, or its challenge window has already elapsed.
// Direct conclusion sets Timeout to the concluding call's "now", so both
// paths collapse into the same now >= Timeout check going forward.
func (rs RegisteredState) Terminal(now int64) bool {
	return rs.State.Finalized || now >= rs.Timeout
}

// Equal reports whether two Params describe the same channel
// configuration, byte for byte.
func (p Params) Equal(o Params) bool {
	if p.Nonce != o.Nonce || p.ChallengeDuration != o.ChallengeDuration {
		return false
	}
	if len(p.Participants) != len(o.Participants) {
		return false
	}
	for i := range p.Participants {
		if p.Participants[i] != o.Participants[i] {
			return false
		}
	}
	return true
}

// IndexOf returns the index of key within Participants, or -1 if absent.
func (p Params) IndexOf(key ParticipantKey) int {
	for i, k := range p.Participants {
		if k == key {
			return i
		}
	}
	return -1
}

// HasDuplicateParticipants reports whether Participants contains the same
// key more than once.
func (p Params) HasDuplicateParticipants() bool {
	seen := make(map[ParticipantKey]struct{}, len(p.Participants))
	for _, k := range p.Participants {
		if _, ok := seen[k]; ok {
			return true
		}
		seen[k] = struct{}{}
	}
	return false
}

// Sum adds up an allocation, returning ok=false on uint64 overflow so
// callers can reject with InvalidInput instead of silently wrapping.
func Sum(amounts []uint64) (total uint64, ok bool) {
	for _, a := range amounts {
		next := total + a
		if next < total {
			return 0, false
		}
		total = next
	}
	return total, true
}
