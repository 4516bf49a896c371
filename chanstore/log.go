package chanstore

import "github.com/btcsuite/btclog"

// log is this package's subsystem logger. It starts disabled, exactly as
// channeldb's logger does before daemon/log.go wires it, so importing
// this package never requires a host to configure logging first.
var log btclog.Logger = btclog.Disabled

// UseLogger sets the subsystem logger used by this package. It should
// be called before the package is used.
func UseLogger(logger btclog.Logger) {
	log = logger
}
