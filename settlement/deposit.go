// Package settlement implements the deposit ledger, the idempotent
// credit-notification path, and the authenticated withdrawal protocol.
// It is the boundary where the core's bookkeeping meets the external
// token/ledger subsystem, reached only through package ports.
package settlement

import (
	"github.com/breez/paychan/chanerrors"
	"github.com/breez/paychan/channel"
	"github.com/breez/paychan/chanstore"
	"github.com/breez/paychan/clock"
	"github.com/breez/paychan/ports"
)

// Ledger owns deposit accounting and withdrawal settlement on top of a
// persistent store and the host's token/ledger collaborators.
type Ledger struct {
	store    *chanstore.DB
	clock    clock.Clock
	transfer ports.TransferRequester
	credits  ports.CreditSource
}

// New returns a Ledger backed by store, using transfer to move funds on
// withdrawal and credits to resolve incoming deposit notifications.
func New(store *chanstore.DB, c clock.Clock, transfer ports.TransferRequester, credits ports.CreditSource) *Ledger {
	return &Ledger{store: store, clock: c, transfer: transfer, credits: credits}
}

// Deposit additively credits funding's balance by amount. It is the
// runtime's responsibility to have already received/credited the funds
// before calling this; the ledger only accounts for them, it never
// itself transfers tokens.
func (l *Ledger) Deposit(funding channel.Funding, amount uint64) error {
	registered, ok, err := l.store.GetRegistered(funding.Channel)
	if err != nil {
		return chanerrors.Wrap(err, "unable to read registry")
	}
	if ok && registered.Terminal(l.clock.Now()) {
		return chanerrors.New(chanerrors.Finalized,
			"channel %v is already concluded, no further deposits accepted", funding.Channel)
	}

	if err := l.store.AddHolding(funding, amount); err != nil {
		return chanerrors.Wrap(err, "unable to persist deposit")
	}

	log.Infof("deposit: funding=%v amount=%d", funding, amount)
	return nil
}

// QueryHoldings returns funding's current balance, or ok=false if the
// funding has never been credited.
func (l *Ledger) QueryHoldings(funding channel.Funding) (amount uint64, ok bool, err error) {
	amount, ok, err = l.store.GetHolding(funding)
	if err != nil {
		return 0, false, chanerrors.Wrap(err, "unable to read holdings")
	}
	return amount, ok, nil
}

// ApplyNotification resolves and applies a block-indexed credit
// notification exactly once. Redelivery of the same blockIndex is a
// no-op, which is what makes the deposit side of the protocol tolerate
// at-least-once delivery from the host's token subsystem.
func (l *Ledger) ApplyNotification(blockIndex uint64) error {
	processed, err := l.store.IsBlockProcessed(blockIndex)
	if err != nil {
		return chanerrors.Wrap(err, "unable to check notification dedupe")
	}
	if processed {
		log.Debugf("notification %d already applied, ignoring", blockIndex)
		return nil
	}

	credit, err := l.credits.ResolveCredit(blockIndex)
	if err != nil {
		return chanerrors.Wrap(err, "unable to resolve credit for block %d", blockIndex)
	}

	if err := l.Deposit(credit.Funding, credit.Amount); err != nil {
		return err
	}

	if err := l.store.MarkBlockProcessed(blockIndex); err != nil {
		return chanerrors.Wrap(err, "unable to persist notification dedupe marker")
	}
	return nil
}
