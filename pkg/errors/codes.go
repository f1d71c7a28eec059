package errors

import "strings"

// ErrorCode is a string representation of a specific error condition.
// Codes are namespaced by module: "<MODULE>_<NNN>".
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal       ErrorCode = "COMMON_001"
	ErrCodeBadRequest     ErrorCode = "COMMON_002"
	ErrCodeNotFound       ErrorCode = "COMMON_005"
	ErrCodeValidation     ErrorCode = "COMMON_010"
	ErrCodeSerialization  ErrorCode = "COMMON_011"
	ErrCodeNotImplemented ErrorCode = "COMMON_016"
)

// Aliases used by the factory helpers.
const (
	CodeInternal       = ErrCodeInternal
	CodeInvalidParam   = ErrCodeBadRequest
	CodeNotFound       = ErrCodeNotFound
	CodeNotImplemented = ErrCodeNotImplemented
	CodeOK             = ErrorCode("OK")
	CodeUnknown        = ErrorCode("UNKNOWN")
)

// Span Module Error Codes
const (
	ErrCodeSpanOutOfBounds ErrorCode = "SPN_001"
	ErrCodeInvalidSource   ErrorCode = "SPN_002"
	ErrCodeTokenDecode     ErrorCode = "SPN_003"
)

// Render Module Error Codes
const (
	ErrCodeUnknownTag     ErrorCode = "REN_001"
	ErrCodeRenderFailed   ErrorCode = "REN_002"
	ErrCodeInvalidPalette ErrorCode = "REN_003"
)

// Config Module Error Codes
const (
	ErrCodeConfigInvalid  ErrorCode = "CFG_001"
	ErrCodeConfigNotFound ErrorCode = "CFG_002"
)

// Process exit statuses used by the CLI.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitUsage    = 2
	ExitInternal = 70
)

// ErrorCodeExitStatus maps ErrorCodes to process exit statuses.  Codes that
// describe a caller mistake map to ExitUsage.
var ErrorCodeExitStatus = map[ErrorCode]int{
	ErrCodeInternal:       ExitInternal,
	ErrCodeBadRequest:     ExitUsage,
	ErrCodeNotFound:       ExitFailure,
	ErrCodeValidation:     ExitUsage,
	ErrCodeSerialization:  ExitFailure,
	ErrCodeNotImplemented: ExitFailure,

	ErrCodeSpanOutOfBounds: ExitFailure,
	ErrCodeInvalidSource:   ExitUsage,
	ErrCodeTokenDecode:     ExitUsage,

	ErrCodeUnknownTag:     ExitFailure,
	ErrCodeRenderFailed:   ExitFailure,
	ErrCodeInvalidPalette: ExitUsage,

	ErrCodeConfigInvalid:  ExitUsage,
	ErrCodeConfigNotFound: ExitUsage,
}

// ExitStatusForCode returns the process exit status for an ErrorCode.
func ExitStatusForCode(code ErrorCode) int {
	if code == CodeOK {
		return ExitOK
	}
	if status, ok := ErrorCodeExitStatus[code]; ok {
		return status
	}
	return ExitFailure
}

// IsUsageError returns true if the ErrorCode describes bad caller input.
func IsUsageError(code ErrorCode) bool {
	return ExitStatusForCode(code) == ExitUsage
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
