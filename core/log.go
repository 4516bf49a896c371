package core

import (
	"sync"

	"github.com/btcsuite/btclog"

	"github.com/breez/paychan/chanstore"
	"github.com/breez/paychan/dispute"
	"github.com/breez/paychan/paychanlog"
	"github.com/breez/paychan/settlement"
	"github.com/breez/paychan/validator"
)

var log btclog.Logger = btclog.Disabled

// wireLoggersOnce ensures every package-level subsystem logger is
// handed to its owning package exactly once per process, deferred to
// first Core construction since this package has no main of its own.
var wireLoggersOnce sync.Once

func initLoggers(level btclog.Level) {
	wireLoggersOnce.Do(func() {
		storeLog, disputeLog, validatorLog, settleLog, coreLog := paychanlog.Loggers()
		chanstore.UseLogger(storeLog)
		dispute.UseLogger(disputeLog)
		validator.UseLogger(validatorLog)
		settlement.UseLogger(settleLog)
		log = coreLog
	})
	paychanlog.SetLevels(level)
}
