package action

import "errors"

// Sentinel errors the parsing, validation, and execution passes raise
// internally; each is mapped to a numbered result code by the caller that
// catches it (spec.md §4.4, §6).
var (
	errExoticInActionList = errors.New("action: exotic cell in action list")
	errTooManyActions     = errors.New("action: action list exceeds MAX_ACTIONS")
	errActionParse        = errors.New("action: could not parse action body")
	errUnknownActionTag   = errors.New("action: unrecognized action tag")

	errInsufficientTokens = errors.New("action: insufficient token balance")
	errInsufficientExtra  = errors.New("action: insufficient extra-currency balance")

	errInvalidSrcAddr     = errors.New("action: invalid source address")
	errInvalidDstAddr     = errors.New("action: invalid destination address")
	errFailedToFitMessage = errors.New("action: message does not fit in a single cell")
	errMessageOutOfLimits = errors.New("action: message exceeds cell/bit limits")
	errNoLibCode          = errors.New("action: library add by hash alone is not permitted")
	errInvalidLibDict     = errors.New("action: library dictionary mutation failed")
	errLibOutOfLimits     = errors.New("action: library cell count exceeds limit")
	errUnknownSendMsgFlag = errors.New("action: unrecognized SendMsg mode bits")
	errInvalidSendMsgFlag = errors.New("action: ALL_BALANCE and WITH_REMAINING_BALANCE both set")
	errUnknownReserveFlag = errors.New("action: unrecognized ReserveCurrency mode bits")
	errInvalidReserveFlag = errors.New("action: REVERSE without WITH_ORIGINAL_BALANCE")
	errUnknownLibraryFlag = errors.New("action: unrecognized ChangeLibrary mode bits")
	errInvalidLibraryFlag = errors.New("action: ADD_PRIVATE and ADD_PUBLIC both set")
	errStateOutOfLimits   = errors.New("action: candidate state exceeds workchain size limits")
)
