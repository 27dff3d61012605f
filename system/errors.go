package system

import (
	"errors"
	"fmt"
	"strconv"
)

// Error represents a recoverable condition detected by one of the engines.
//
// All engine failures are local and surfaced to the immediate caller; no
// operation in this module crashes the host process. Invalid numeric inputs
// (NaN, non-positive ranges) are rejected before any iteration begins.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Details contains additional context (parameter names, values).
	Details map[string]string
}

// ErrorCode categorizes engine errors.
type ErrorCode string

const (
	// CodeInvalidConfiguration indicates a rule references a missing
	// entity, a duplicate rule between the same pair, or a structurally
	// broken state.
	CodeInvalidConfiguration ErrorCode = "INVALID_CONFIGURATION"

	// CodeInvalidRange indicates a non-positive or NaN range/threshold
	// parameter.
	CodeInvalidRange ErrorCode = "INVALID_RANGE"

	// CodeInsufficientData indicates an estimation lacks enough distinct
	// samples (fractal dimension).
	CodeInsufficientData ErrorCode = "INSUFFICIENT_DATA"

	// CodeNonConvergence indicates an iterative search exhausted its cap
	// without meeting its tolerance. Callers may accept the last snapshot
	// anyway; this is a distinguished outcome, not a silent success.
	CodeNonConvergence ErrorCode = "NON_CONVERGENCE"
)

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidConfigurationError creates an Error for structural problems in a
// state (missing endpoints, duplicate pairs, invalid scales).
func NewInvalidConfigurationError(format string, args ...any) *Error {
	return &Error{
		Code:    CodeInvalidConfiguration,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewInvalidRangeError creates an Error for a rejected numeric parameter.
func NewInvalidRangeError(param string, value float64) *Error {
	return &Error{
		Code:    CodeInvalidRange,
		Message: fmt.Sprintf("parameter %s out of range: %v", param, value),
		Details: map[string]string{
			"param": param,
			"value": strconv.FormatFloat(value, 'g', -1, 64),
		},
	}
}

// NewInsufficientDataError creates an Error for estimations without enough
// distinct samples.
func NewInsufficientDataError(format string, args ...any) *Error {
	return &Error{
		Code:    CodeInsufficientData,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewNonConvergenceError creates an Error for an iterative search that
// exhausted its cap.
func NewNonConvergenceError(iterations int) *Error {
	return &Error{
		Code:    CodeNonConvergence,
		Message: fmt.Sprintf("iteration cap reached without convergence (%d iterations)", iterations),
		Details: map[string]string{
			"iterations": strconv.Itoa(iterations),
		},
	}
}

// IsInvalidConfiguration reports whether err is an invalid-configuration
// error. Uses errors.As to handle wrapped errors.
func IsInvalidConfiguration(err error) bool { return hasCode(err, CodeInvalidConfiguration) }

// IsInvalidRange reports whether err is an invalid-range error.
func IsInvalidRange(err error) bool { return hasCode(err, CodeInvalidRange) }

// IsInsufficientData reports whether err is an insufficient-data error.
func IsInsufficientData(err error) bool { return hasCode(err, CodeInsufficientData) }

// IsNonConvergence reports whether err is a non-convergence error.
func IsNonConvergence(err error) bool { return hasCode(err, CodeNonConvergence) }

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
