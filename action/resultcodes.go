// Package action implements the Action Phase executor (spec.md §4.4): it
// parses the action-list chain left behind in c5 by a completed VM run,
// validates each entry, and executes SendMsg/SetCode/ReserveCurrency/
// ChangeLibrary against a mutable per-phase context, producing an
// ActionPhaseFull record.
package action

// Result codes spec.md §6 assigns to the action phase.
const (
	CodeActionListInvalid  = 32
	CodeTooManyActions     = 33
	CodeActionInvalid      = 34
	CodeInvalidSrcAddr     = 35
	CodeInvalidDstAddr     = 36
	CodeNotEnoughBalance   = 37
	CodeNotEnoughExtra     = 38
	CodeFailedToFitMessage = 39
	CodeMessageOutOfLimits = 40
	CodeNoLibCode          = 41
	CodeInvalidLibDict     = 42
	CodeLibOutOfLimits     = 43
	CodeStateOutOfLimits   = 50
)

// MaxActions bounds the action-list chain length (spec.md §4.4, parsing
// pass rule 3).
const MaxActions = 255

// Action tags as published by the TL-B schema (spec.md §6).
const (
	tagSendMsg         = 0x0ec3c86d
	tagSetCode         = 0xad4de08e
	tagReserveCurrency = 0x36e6b809
	tagChangeLibrary   = 0x26fa1dd4
)
