// Package core is the top-level entry point embedding hosts call
// through: it wires the store, clock, validator, dispute registry and
// settlement ledger together and exposes the seven operations the
// payment-channel protocol defines. It plays the role daemon.go/server.go
// plays for lnd: the place where every subsystem is constructed once and
// handed to callers behind a single facade.
package core

import (
	"github.com/breez/paychan/chancfg"
	"github.com/breez/paychan/chanerrors"
	"github.com/breez/paychan/channel"
	"github.com/breez/paychan/chanstore"
	"github.com/breez/paychan/clock"
	"github.com/breez/paychan/dispute"
	"github.com/breez/paychan/metrics"
	"github.com/breez/paychan/ports"
	"github.com/breez/paychan/settlement"
)

// Core is the assembled payment-channel engine. A host constructs one
// with New and then calls its methods directly; Core itself holds no
// network or RPC surface — library semantics, not a transport.
type Core struct {
	store    *chanstore.DB
	clock    clock.Clock
	disputes *dispute.Registry
	ledger   *settlement.Ledger
}

// New opens the store at cfg.DataDir, wires every subsystem logger, and
// returns a ready-to-use Core. transfer and credits are the host's
// token/ledger collaborators (package ports).
func New(cfg chancfg.Config, transfer ports.TransferRequester, credits ports.CreditSource) (*Core, error) {
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, chanerrors.New(chanerrors.InvalidInput, "invalid configuration: %v", err)
	}

	initLoggers(cfg.Level())

	store, err := chanstore.Open(cfg.DataDir)
	if err != nil {
		return nil, chanerrors.Wrap(err, "unable to open store")
	}

	c := clock.System{}
	return &Core{
		store:    store,
		clock:    c,
		disputes: dispute.New(store, c),
		ledger:   settlement.New(store, c, transfer, credits),
	}, nil
}

// NewWithClock is identical to New but lets the caller inject a Clock,
// the seam tests use to exercise the challenge-window edges
// deterministically.
func NewWithClock(cfg chancfg.Config, c clock.Clock, transfer ports.TransferRequester, credits ports.CreditSource) (*Core, error) {
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, chanerrors.New(chanerrors.InvalidInput, "invalid configuration: %v", err)
	}

	initLoggers(cfg.Level())

	store, err := chanstore.Open(cfg.DataDir)
	if err != nil {
		return nil, chanerrors.Wrap(err, "unable to open store")
	}

	return &Core{
		store:    store,
		clock:    c,
		disputes: dispute.New(store, c),
		ledger:   settlement.New(store, c, transfer, credits),
	}, nil
}

// Close releases the underlying store.
func (e *Core) Close() error {
	return e.store.Close()
}

// Deposit credits funding's balance by amount.
func (e *Core) Deposit(funding channel.Funding, amount uint64) error {
	if err := e.ledger.Deposit(funding, amount); err != nil {
		metrics.ObserveOperation("deposit", err)
		return err
	}
	metrics.ObserveOperation("deposit", nil)
	return nil
}

// QueryHoldings returns funding's current balance.
func (e *Core) QueryHoldings(funding channel.Funding) (uint64, bool, error) {
	return e.ledger.QueryHoldings(funding)
}

// Dispute registers a non-final co-signed state, opening or advancing
// the challenge window for its channel.
func (e *Core) Dispute(params channel.Params, fss channel.FullySignedState) error {
	err := e.disputes.Dispute(params, fss)
	metrics.ObserveOperation("dispute", err)
	return err
}

// Conclude transitions a channel to its terminal state, either directly
// via a final co-signed state or by confirming a dispute's challenge
// window has elapsed.
func (e *Core) Conclude(params channel.Params, fss *channel.FullySignedState) error {
	err := e.disputes.Conclude(params, fss)
	metrics.ObserveOperation("conclude", err)
	return err
}

// QueryState returns the currently registered state for channelID, if
// any.
func (e *Core) QueryState(channelID channel.ChannelID) (channel.RegisteredState, bool, error) {
	return e.disputes.QueryState(channelID)
}

// Withdraw pays out a participant's share of a terminal channel to the
// recipient named in req, authenticated by sig. It returns the amount
// paid out on success.
func (e *Core) Withdraw(req channel.WithdrawalRequest, sig []byte) (uint64, error) {
	amount, err := e.ledger.Withdraw(req, sig)
	metrics.ObserveOperation("withdraw", err)
	return amount, err
}

// TransactionNotification applies an idempotent, block-indexed credit
// notification from the host's token subsystem.
func (e *Core) TransactionNotification(blockIndex uint64) error {
	err := e.ledger.ApplyNotification(blockIndex)
	metrics.ObserveOperation("transaction_notification", err)
	return err
}
