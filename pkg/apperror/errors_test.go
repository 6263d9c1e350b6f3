package apperror

import (
	"errors"
	"fmt"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorString(t *testing.T) {
	err := New(CodeMismatchedLengths, "speeds length differs from distances")
	assert.Equal(t, "[MISMATCHED_LENGTHS] speeds length differs from distances", err.Error())

	withField := NewWithField(CodeIndexOutOfRange, "index 7 outside corridor", "accidents")
	assert.Equal(t, "[INDEX_OUT_OF_RANGE] index 7 outside corridor (field: accidents)", withField.Error())
}

func TestConnectCodeMapping(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want connect.Code
	}{
		{CodeMismatchedLengths, connect.CodeInvalidArgument},
		{CodeEmptyCorridor, connect.CodeInvalidArgument},
		{CodeIndexOutOfRange, connect.CodeInvalidArgument},
		{CodeNonNumeric, connect.CodeInvalidArgument},
		{CodeNotFound, connect.CodeNotFound},
		{CodeUnauthenticated, connect.CodeUnauthenticated},
		{CodeRateLimited, connect.CodeResourceExhausted},
		{CodeReportFailed, connect.CodeInternal},
		{CodeInternal, connect.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.code, "msg").ConnectCode())
		})
	}
}

func TestToConnect(t *testing.T) {
	connErr := ToConnect(New(CodeNotFound, "run not found"))
	require.NotNil(t, connErr)
	assert.Equal(t, connect.CodeNotFound, connErr.Code())

	plain := ToConnect(errors.New("boom"))
	require.NotNil(t, plain)
	assert.Equal(t, connect.CodeInternal, plain.Code())

	assert.Nil(t, ToConnect(nil))
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := errors.New("pool exhausted")
	err := Wrap(cause, CodeInternal, "failed to store run")

	assert.ErrorIs(t, err, cause)
	assert.True(t, Is(err, CodeInternal))
	assert.False(t, Is(err, CodeNotFound))

	wrapped := fmt.Errorf("handler: %w", err)
	assert.True(t, Is(wrapped, CodeInternal))
}

func TestSeverity(t *testing.T) {
	assert.Equal(t, "warning", NewWarning(CodeNegativeValue, "m").Severity.String())
	assert.Equal(t, "error", New(CodeInternal, "m").Severity.String())
	assert.Equal(t, "critical", New(CodeInternal, "m").WithSeverity(SeverityCritical).Severity.String())
}
