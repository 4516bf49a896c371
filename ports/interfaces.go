// Package ports defines the external collaborators the core depends on
// but does not implement itself: the token/ledger subsystem that
// actually moves funds, and the host runtime that notifies the core of
// incoming credits. Keeping these as interfaces rather than concrete
// clients is the same boundary mod-clearnet draws between its core
// package and its BlockchainAdapter/P2PAdapter ports.
package ports

import "github.com/breez/paychan/channel"

// TransferRequester is the token/ledger subsystem the core asks to move
// funds on withdrawal. The core accounts for amounts; it never transfers
// them itself. A TransferRequester call that returns an error causes the
// withdrawal to roll back atomically, surfaced as LedgerFailure.
type TransferRequester interface {
	// Transfer asks the ledger subsystem to pay amount to receiver. It
	// blocks until the transfer either succeeds or definitively fails;
	// the core treats any non-nil error as a reason to roll back.
	Transfer(receiver channel.Principal, amount uint64) error
}

// CreditPayload is the decoded content of a block-indexed credit
// notification: a deposit of amount into funding that the host's ledger
// subsystem has already settled and is now reporting to the core. The
// notification API is keyed by an opaque block index whose payload
// identifies (channel, participant, amount).
type CreditPayload struct {
	Funding channel.Funding
	Amount  uint64
}

// CreditSource resolves an opaque block index to the credit it
// represents. The core calls this only for block indices it has not yet
// applied (an index whose earlier application failed is resolved again);
// TransactionNotification is idempotent on repeated delivery of an
// already applied index.
type CreditSource interface {
	ResolveCredit(blockIndex uint64) (CreditPayload, error)
}
