// Package tvmlog provides structured logging helpers for reporting VM
// exceptions, commits, and action results; the tvm and action packages do
// not call them themselves.
// Logging is layered on the standard library's log/slog rather than the
// ecosystem logger the teacher's sibling geth-derived repos use
// (github.com/ethereum/go-ethereum/log): pulling that package in would drag
// go-ethereum itself back in as a dependency, which DESIGN.md already
// explains was dropped.
package tvmlog

import (
	"context"
	"log/slog"

	"github.com/dsnet/golib/unitconv"
)

// New returns a Logger writing to slog's default handler, tagged with a
// component name so VM and action-phase lines can be told apart.
func New(component string) *Logger {
	return &Logger{base: slog.Default().With("component", component)}
}

// Logger wraps slog.Logger with the handful of structured events this
// module's interpreter and executor emit.
type Logger struct {
	base *slog.Logger
}

// Exception logs a raised VM exception, including whether it occurred
// while an earlier exception's handler was still running (spec.md §4.3).
func (l *Logger) Exception(code int, arg int64, inException bool) {
	l.base.Info("vm exception",
		"code", code,
		"arg", arg,
		"in_exception", inException,
	)
}

// FatalExit logs the VM's non-negotiable exit when a second exception
// occurs during handling of the first (spec.md §7).
func (l *Logger) FatalExit(code int) {
	l.base.Error("vm fatal exit", "code", code)
}

// Commit logs a successful commit of the (c4, c5) pair.
func (l *Logger) Commit(dataBits, actionsBits int) {
	l.base.Debug("vm commit",
		"data_size", unitconv.FormatPrefix(float64((dataBits+7)/8), unitconv.IEC, 1),
		"actions_size", unitconv.FormatPrefix(float64((actionsBits+7)/8), unitconv.IEC, 1),
	)
}

// ActionPhase logs the outcome of one account's action phase.
func (l *Logger) ActionPhase(success bool, resultCode, totalActions, messagesCreated int, totalMsgSizeBits uint64) {
	level := slog.LevelInfo
	if !success {
		level = slog.LevelWarn
	}
	l.base.Log(context.Background(), level, "action phase",
		"success", success,
		"result_code", resultCode,
		"total_actions", totalActions,
		"messages_created", messagesCreated,
		"total_message_size", unitconv.FormatPrefix(float64((totalMsgSizeBits+7)/8), unitconv.IEC, 1),
	)
}

// ActionFailed logs a single failing action within a phase.
func (l *Logger) ActionFailed(index, resultCode int, bounce bool) {
	l.base.Warn("action failed",
		"index", index,
		"result_code", resultCode,
		"bounce", bounce,
	)
}
