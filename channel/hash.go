package channel

import (
	"crypto/sha256"
	"io"
)

// hashFunc is the deployment-fixed hash used everywhere a channel id,
// state hash, or withdrawal-request hash is derived. SHA-256 is chosen
// here; swapping it requires a coordinated change with off-chain
// signers and a new encoding version tag, so it is not made pluggable
// at runtime.
func hashFunc(data []byte) Hash {
	return sha256.Sum256(data)
}

// ChannelIDOf computes channel_id(params) = H(encode(params)).
func ChannelIDOf(p Params) (ChannelID, error) {
	b, err := marshal(func(w io.Writer) error {
		return EncodeParams(w, p)
	})
	if err != nil {
		return Hash{}, err
	}
	return hashFunc(b), nil
}

// StateHash computes state_hash(state) = H(encode(state)), the digest
// every participant signature authenticates.
func StateHash(s State) (Hash, error) {
	b, err := marshal(func(w io.Writer) error {
		return EncodeState(w, s)
	})
	if err != nil {
		return Hash{}, err
	}
	return hashFunc(b), nil
}

// WithdrawalRequestHash computes wdreq_hash(req) = H(encode(req)), the
// digest a withdrawal signature authenticates.
func WithdrawalRequestHash(req WithdrawalRequest) (Hash, error) {
	b, err := marshal(func(w io.Writer) error {
		return EncodeWithdrawalRequest(w, req)
	})
	if err != nil {
		return Hash{}, err
	}
	return hashFunc(b), nil
}
