package action

// SendMsg mode bits (spec.md §4.4.1).
const (
	sendModePayFeeSeparately = 1
	sendModeIgnoreError      = 2
	sendModeBounceOnError    = 16
	sendModeDeleteIfEmpty    = 32
	sendModeWithRemaining    = 64
	sendModeAllBalance       = 128

	sendModeKnownMask = sendModePayFeeSeparately | sendModeIgnoreError | sendModeBounceOnError |
		sendModeDeleteIfEmpty | sendModeWithRemaining | sendModeAllBalance
	sendModeExtOutAllowedMask = sendModePayFeeSeparately | sendModeIgnoreError | sendModeBounceOnError
)

// ReserveCurrency mode bits (spec.md §4.4.3).
const (
	reserveModeAllBut        = 1
	reserveModeIgnoreError   = 2
	reserveModeWithOriginal  = 4
	reserveModeReverse       = 8
	reserveModeBounceOnError = 16

	reserveModeKnownMask = reserveModeAllBut | reserveModeIgnoreError | reserveModeWithOriginal |
		reserveModeReverse | reserveModeBounceOnError
)

// ChangeLibrary mode bits (spec.md §4.4.4).
const (
	libraryModeAddPrivate    = 1
	libraryModeAddPublic     = 2
	libraryModeIgnoreError   = 4
	libraryModeBounceOnError = 8

	libraryModeKnownMask = libraryModeAddPrivate | libraryModeAddPublic | libraryModeIgnoreError | libraryModeBounceOnError
)
