// Package paychanlog wires a single btclog backend and hands out
// subsystem loggers: one backend, one logger per subsystem, each
// subsystem package exposing its own UseLogger setter that this package
// drives.
package paychanlog

import (
	"io"
	"os"

	"github.com/btcsuite/btclog"
)

// Subsystem tags, one per package that logs.
const (
	SubsystemStore     = "STOR"
	SubsystemDispute   = "DISP"
	SubsystemValidator = "VALD"
	SubsystemSettle    = "SETL"
	SubsystemCore      = "CORE"
)

// backendLog is the backend every subsystem logger is created from. It
// defaults to stderr so a host that never calls InitBackend still sees
// something; InitBackend lets an embedding host redirect it.
var backendLog = btclog.NewBackend(os.Stderr)

var (
	storLog = backendLog.Logger(SubsystemStore)
	dispLog = backendLog.Logger(SubsystemDispute)
	valdLog = backendLog.Logger(SubsystemValidator)
	setlLog = backendLog.Logger(SubsystemSettle)
	coreLog = backendLog.Logger(SubsystemCore)
)

// subsystemLoggers maps each subsystem tag to its logger, the lookup
// table SetLevel/SetLevels share.
var subsystemLoggers = map[string]btclog.Logger{
	SubsystemStore:     storLog,
	SubsystemDispute:   dispLog,
	SubsystemValidator: valdLog,
	SubsystemSettle:    setlLog,
	SubsystemCore:      coreLog,
}

// Loggers returns the package-level loggers in initialization order so
// callers (chanstore.UseLogger, dispute.UseLogger, ...) can be wired once
// at program start.
func Loggers() (store, dispute, validator, settle, core btclog.Logger) {
	return storLog, dispLog, valdLog, setlLog, coreLog
}

// InitBackend redirects every subsystem logger to w, for hosts that want
// file-based or rotated logging instead of the stderr default.
func InitBackend(w io.Writer) {
	backendLog = btclog.NewBackend(w)
	for tag := range subsystemLoggers {
		subsystemLoggers[tag] = backendLog.Logger(tag)
	}
	storLog = subsystemLoggers[SubsystemStore]
	dispLog = subsystemLoggers[SubsystemDispute]
	valdLog = subsystemLoggers[SubsystemValidator]
	setlLog = subsystemLoggers[SubsystemSettle]
	coreLog = subsystemLoggers[SubsystemCore]
}

// SetLevel sets the logging level for the given subsystem tag. Invalid
// subsystems are ignored.
func SetLevel(subsystem string, level btclog.Level) {
	if logger, ok := subsystemLoggers[subsystem]; ok {
		logger.SetLevel(level)
	}
}

// SetLevels sets every subsystem logger to the same level.
func SetLevels(level btclog.Level) {
	for _, logger := range subsystemLoggers {
		logger.SetLevel(level)
	}
}
