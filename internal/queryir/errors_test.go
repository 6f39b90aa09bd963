package queryir

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildError_Codes(t *testing.T) {
	testCases := []struct {
		name string
		err  *BuildError
		code BuildErrorCode
	}{
		{name: "unsupported join", err: NewUnsupportedJoinError(1, "xor"), code: ErrCodeUnsupportedJoin},
		{name: "trailing join", err: NewTrailingJoinError(2, "and"), code: ErrCodeTrailingJoin},
		{name: "unknown operator", err: NewUnknownOperatorError(0, "state", "-bogus"), code: ErrCodeUnknownOperator},
		{name: "missing value", err: NewMissingValueError(0, "state", "-eq"), code: ErrCodeMissingValue},
		{name: "too many items", err: NewTooManyItemsError(3, 5, 3, "filter"), code: ErrCodeTooManyItems},
		{name: "invalid direction", err: NewInvalidDirectionError(1, "opened_at", "sideways"), code: ErrCodeInvalidDirection},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.code, tc.err.Code)
			assert.Equal(t, tc.code, CodeOf(tc.err))
			assert.True(t, IsBuildError(tc.err))
		})
	}
}

func TestCodeOf_WrappedError(t *testing.T) {
	err := fmt.Errorf("compiling filter: %w", NewTrailingJoinError(4, "or"))
	assert.Equal(t, ErrCodeTrailingJoin, CodeOf(err))
	assert.True(t, IsBuildError(err))
}

func TestCodeOf_NonBuildError(t *testing.T) {
	err := fmt.Errorf("plain error")
	assert.Equal(t, BuildErrorCode(""), CodeOf(err))
	assert.False(t, IsBuildError(err))
}

func TestBuildError_MessageIncludesPosition(t *testing.T) {
	err := NewUnknownOperatorError(2, "state", "-bogus")
	require.Contains(t, err.Error(), "clause 2")
	require.Contains(t, err.Error(), "-bogus")
}

func TestBuildError_UnknownPositionOmitted(t *testing.T) {
	err := NewInvalidDirectionError(-1, "opened_at", "up")
	assert.NotContains(t, err.Error(), "clause")
}
