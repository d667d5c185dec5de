package replacement

import (
	"errors"
	"fmt"
)

// ErrorCode represents different types of simulation errors
type ErrorCode int

const (
	ErrCodeUnknown ErrorCode = iota
	ErrCodeInvalidFrameCount
	ErrCodeUnknownPolicy
	ErrCodeUnknownLookahead
)

// SimError represents a simulation error with context
type SimError struct {
	Code    ErrorCode
	Message string
	Op      string // Operation that failed
	Err     error  // Underlying error (if any)
}

// Error implements the error interface
func (e *SimError) Error() string {
	if e.Op != "" {
		if e.Err != nil {
			return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
		}
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *SimError) Unwrap() error {
	return e.Err
}

// Is matches any *SimError carrying the same code, so errors.Is works
// against the exported sentinels below.
func (e *SimError) Is(target error) bool {
	if t, ok := target.(*SimError); ok {
		return e.Code == t.Code
	}
	return false
}

// NewSimError creates a new simulation error
func NewSimError(code ErrorCode, op, message string, err error) *SimError {
	return &SimError{
		Code:    code,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

// Sentinels for errors.Is comparisons.
var (
	ErrInvalidFrameCount = &SimError{Code: ErrCodeInvalidFrameCount, Message: "frame count must be positive"}
	ErrUnknownPolicy     = &SimError{Code: ErrCodeUnknownPolicy, Message: "unknown replacement policy"}
	ErrUnknownLookahead  = &SimError{Code: ErrCodeUnknownLookahead, Message: "unknown lookahead strategy"}
)

func errInvalidFrameCount(op string, frames int) *SimError {
	return NewSimError(
		ErrCodeInvalidFrameCount,
		op,
		fmt.Sprintf("frame count must be positive, got %d", frames),
		nil,
	)
}

func errUnknownPolicy(op, name string) *SimError {
	return NewSimError(
		ErrCodeUnknownPolicy,
		op,
		fmt.Sprintf("unknown replacement policy %q (must be fifo, lru, or optimal)", name),
		nil,
	)
}

func errUnknownLookahead(op string, strategy LookaheadStrategy) *SimError {
	return NewSimError(
		ErrCodeUnknownLookahead,
		op,
		fmt.Sprintf("unknown lookahead strategy %q", string(strategy)),
		nil,
	)
}

// IsErrorCode checks if err, or any error it wraps, has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var se *SimError
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}

// GetErrorCode returns the error code from the first *SimError in err's
// chain, or ErrCodeUnknown
func GetErrorCode(err error) ErrorCode {
	var se *SimError
	if errors.As(err, &se) {
		return se.Code
	}
	return ErrCodeUnknown
}
