package settlement

import (
	"github.com/breez/paychan/chancrypto"
	"github.com/breez/paychan/chanerrors"
	"github.com/breez/paychan/channel"
)

// Withdraw pays out a single participant's share of a terminal channel's
// final allocation to the on-chain recipient named in req, authenticated
// by sig over wdreq_hash(req). It is all-or-nothing: a funding entry is
// withdrawn exactly once, and a failed transfer leaves holdings exactly
// as they were before the call.
func (l *Ledger) Withdraw(req channel.WithdrawalRequest, sig []byte) (uint64, error) {
	params, ok, err := l.store.GetParams(req.Funding.Channel)
	if err != nil {
		return 0, chanerrors.Wrap(err, "unable to read params")
	}
	if !ok {
		return 0, chanerrors.New(chanerrors.InvalidInput, "unknown channel %v", req.Funding.Channel)
	}
	index := params.IndexOf(req.Funding.Participant)
	if index < 0 {
		return 0, chanerrors.New(chanerrors.InvalidInput, "participant is not party to channel %v", req.Funding.Channel)
	}

	digest, err := channel.WithdrawalRequestHash(req)
	if err != nil {
		return 0, chanerrors.New(chanerrors.InvalidInput, "unable to hash withdrawal request: %v", err)
	}
	if err := chancrypto.Verify(req.Funding.Participant, sig, digest); err != nil {
		return 0, err
	}

	withdrawn, err := l.store.IsWithdrawn(req.Funding)
	if err != nil {
		return 0, chanerrors.Wrap(err, "unable to check withdrawn marker")
	}
	if withdrawn {
		return 0, chanerrors.New(chanerrors.AlreadyWithdrawn, "funding %v has already been withdrawn", req.Funding)
	}

	registered, ok, err := l.store.GetRegistered(req.Funding.Channel)
	if err != nil {
		return 0, chanerrors.Wrap(err, "unable to read registry")
	}
	if !ok || !registered.Terminal(l.clock.Now()) {
		return 0, chanerrors.New(chanerrors.NotFinalized, "channel %v has not reached a terminal state", req.Funding.Channel)
	}
	if index >= len(registered.State.Allocation) {
		return 0, chanerrors.New(chanerrors.InvalidInput, "registered state has no allocation for this participant")
	}
	payout := registered.State.Allocation[index]

	previous, hadBalance, err := l.store.GetHolding(req.Funding)
	if err != nil {
		return 0, chanerrors.Wrap(err, "unable to read holdings")
	}

	if err := l.store.MarkWithdrawn(req.Funding); err != nil {
		return 0, chanerrors.Wrap(err, "unable to reserve withdrawal")
	}
	if err := l.store.SetHolding(req.Funding, 0); err != nil {
		if clearErr := l.store.ClearWithdrawn(req.Funding); clearErr != nil {
			log.Errorf("rollback after failed reservation for %v also failed: %v", req.Funding, clearErr)
		}
		return 0, chanerrors.Wrap(err, "unable to reserve withdrawal")
	}

	if err := l.transfer.Transfer(req.Receiver, payout); err != nil {
		if rollbackErr := l.rollbackWithdrawal(req.Funding, previous, hadBalance); rollbackErr != nil {
			log.Errorf("rollback after failed transfer for %v also failed: %v", req.Funding, rollbackErr)
		}
		return 0, chanerrors.Wrap(err, "transfer of %d to receiver failed, withdrawal rolled back", payout)
	}

	log.Infof("withdraw: funding=%v payout=%d receiver=%x", req.Funding, payout, []byte(req.Receiver))
	return payout, nil
}

// rollbackWithdrawal undoes the reservation half of Withdraw after a
// failed transfer, restoring the holding to its pre-reservation value.
func (l *Ledger) rollbackWithdrawal(funding channel.Funding, previous uint64, hadBalance bool) error {
	if err := l.store.ClearWithdrawn(funding); err != nil {
		return err
	}
	if !hadBalance {
		return nil
	}
	return l.store.SetHolding(funding, previous)
}
