// Package validator implements the state-transition validator: it is
// the single place that decides whether a FullySignedState
// is well-formed, matches its Params, fits within current holdings, and
// carries every participant's signature. Every other package that
// accepts a state from the outside world (dispute, settlement) routes
// through here first, the same way lnwallet/reservation.go centralizes
// funding-flow validation instead of scattering checks across callers.
package validator

import (
	"github.com/breez/paychan/chancrypto"
	"github.com/breez/paychan/chanerrors"
	"github.com/breez/paychan/channel"
)

// Validate checks a FullySignedState against params and the channel's
// current total holdings, shape first and signatures last, so an
// attacker cannot learn which signature
// is invalid by forging a well-formed-but-unbalanced state (the
// allocation/holdings check happens before any signature is even
// inspected in either direction). Rule 4 is checked as `<=`; callers
// needing the equality form (settlement paths) must additionally call
// RequireExactAllocation.
func Validate(params channel.Params, fss channel.FullySignedState, holdings uint64) error {
	if len(params.Participants) < 2 {
		return chanerrors.New(chanerrors.InvalidInput, "channel requires at least 2 participants")
	}
	if params.HasDuplicateParticipants() {
		return chanerrors.New(chanerrors.InvalidInput, "duplicate participant key in params")
	}

	channelID, err := channel.ChannelIDOf(params)
	if err != nil {
		return chanerrors.New(chanerrors.InvalidInput, "unable to derive channel id: %v", err)
	}
	if fss.State.Channel != channelID {
		return chanerrors.New(chanerrors.InvalidInput, "state channel id does not match params")
	}

	if len(fss.State.Allocation) != len(params.Participants) {
		return chanerrors.New(chanerrors.InvalidInput, "allocation length does not match participant count")
	}

	sum, ok := channel.Sum(fss.State.Allocation)
	if !ok {
		return chanerrors.New(chanerrors.InvalidInput, "allocation sum overflows")
	}
	if sum > holdings {
		return chanerrors.New(chanerrors.InsufficientFunds,
			"allocation sum %d exceeds holdings %d", sum, holdings)
	}

	digest, err := channel.StateHash(fss.State)
	if err != nil {
		return chanerrors.New(chanerrors.InvalidInput, "unable to hash state: %v", err)
	}
	if err := chancrypto.VerifyAll(params.Participants, fss.Sigs, digest); err != nil {
		return err
	}

	log.Debugf("validated state channel=%v version=%d allocation_sum=%d",
		fss.State.Channel, fss.State.Version, sum)
	return nil
}

// RequireExactAllocation additionally enforces that the allocation sums
// to exactly holdings, the equality form direct conclusion requires.
// Dispute and withdrawal do not call it.
func RequireExactAllocation(fss channel.FullySignedState, holdings uint64) error {
	sum, ok := channel.Sum(fss.State.Allocation)
	if !ok {
		return chanerrors.New(chanerrors.InvalidInput, "allocation sum overflows")
	}
	if sum != holdings {
		return chanerrors.New(chanerrors.InsufficientFunds,
			"allocation sum %d does not equal holdings %d", sum, holdings)
	}
	return nil
}
