package queryir

import (
	"errors"
	"fmt"
)

// BuildError represents an invalid clause detected while decoding or
// encoding a query.
//
// Build errors include:
//   - Unsupported join: join token outside and/or/group
//   - Trailing join: filter sequence ends on a join token
//   - Unknown operator: operator name absent from the operator table
//   - Missing value: no-value comparison uses an operator that wants one
//   - Too many items: clause tuple exceeds its maximum arity
//   - Invalid direction: sort direction outside asc/desc
//
// Every build error is terminal for the call that raised it: the build
// aborts on the first invalid clause and no partial query string is
// returned. A build error always indicates a caller-input bug, never a
// transient condition - retrying is meaningless.
type BuildError struct {
	// Code identifies the error category.
	Code BuildErrorCode

	// Message is a human-readable description.
	Message string

	// Index is the zero-based position of the offending clause within its
	// sequence, or -1 when position is unknown.
	Index int

	// Field names the record field of the offending clause, when it has one.
	Field string

	// Token holds the offending operator name, join token, or direction.
	Token string
}

// BuildErrorCode categorizes build errors.
type BuildErrorCode string

const (
	// ErrCodeUnsupportedJoin indicates a join token outside and/or/group.
	ErrCodeUnsupportedJoin BuildErrorCode = "UNSUPPORTED_JOIN"

	// ErrCodeTrailingJoin indicates a filter sequence ending on a join token.
	ErrCodeTrailingJoin BuildErrorCode = "TRAILING_JOIN"

	// ErrCodeUnknownOperator indicates an operator name absent from the table.
	ErrCodeUnknownOperator BuildErrorCode = "UNKNOWN_OPERATOR"

	// ErrCodeMissingValue indicates a no-value comparison whose operator
	// requires a value.
	ErrCodeMissingValue BuildErrorCode = "MISSING_VALUE"

	// ErrCodeTooManyItems indicates a clause tuple above its maximum arity.
	ErrCodeTooManyItems BuildErrorCode = "TOO_MANY_ITEMS"

	// ErrCodeInvalidDirection indicates a sort direction outside asc/desc.
	ErrCodeInvalidDirection BuildErrorCode = "INVALID_DIRECTION"
)

// Error implements the error interface.
func (e *BuildError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s: %s (clause %d)", e.Code, e.Message, e.Index)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CodeOf extracts the build error code from an error.
// Returns the empty code when the error is not a BuildError.
// Uses errors.As to handle wrapped errors.
func CodeOf(err error) BuildErrorCode {
	var be *BuildError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// IsBuildError reports whether err is (or wraps) a BuildError.
func IsBuildError(err error) bool {
	var be *BuildError
	return errors.As(err, &be)
}

// NewUnsupportedJoinError creates a BuildError for a join token outside
// the supported set.
func NewUnsupportedJoinError(index int, token string) *BuildError {
	return &BuildError{
		Code:    ErrCodeUnsupportedJoin,
		Message: fmt.Sprintf("unsupported join token %q: must be one of and, or, group", token),
		Index:   index,
		Token:   token,
	}
}

// NewTrailingJoinError creates a BuildError for a filter sequence that
// ends on a join token.
func NewTrailingJoinError(index int, token string) *BuildError {
	return &BuildError{
		Code:    ErrCodeTrailingJoin,
		Message: fmt.Sprintf("filter may not end with join token %q", token),
		Index:   index,
		Token:   token,
	}
}

// NewUnknownOperatorError creates a BuildError for an operator name that
// is not in the operator table.
func NewUnknownOperatorError(index int, field, op string) *BuildError {
	return &BuildError{
		Code:    ErrCodeUnknownOperator,
		Message: fmt.Sprintf("unknown operator %q for field %q", op, field),
		Index:   index,
		Field:   field,
		Token:   op,
	}
}

// NewMissingValueError creates a BuildError for a no-value comparison
// whose operator requires a value.
func NewMissingValueError(index int, field, op string) *BuildError {
	return &BuildError{
		Code:    ErrCodeMissingValue,
		Message: fmt.Sprintf("operator %q for field %q requires a value", op, field),
		Index:   index,
		Field:   field,
		Token:   op,
	}
}

// NewTooManyItemsError creates a BuildError for a clause tuple above its
// maximum arity.
func NewTooManyItemsError(index, got, max int, kind string) *BuildError {
	return &BuildError{
		Code:    ErrCodeTooManyItems,
		Message: fmt.Sprintf("%s clause has %d items, maximum is %d", kind, got, max),
		Index:   index,
	}
}

// NewInvalidDirectionError creates a BuildError for a sort direction
// outside asc/desc.
func NewInvalidDirectionError(index int, field string, direction string) *BuildError {
	return &BuildError{
		Code:    ErrCodeInvalidDirection,
		Message: fmt.Sprintf("invalid sort direction %q for field %q: must be asc or desc", direction, field),
		Index:   index,
		Field:   field,
		Token:   direction,
	}
}
