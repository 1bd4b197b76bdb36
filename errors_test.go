package netsock

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSocketError_String tests the identifier-style names of the taxonomy.
func TestSocketError_String(t *testing.T) {
	tests := []struct {
		err      SocketError
		expected string
	}{
		{Success, "Success"},
		{AlreadyConnected, "AlreadyConnected"},
		{NotConnected, "NotConnected"},
		{NetworkingInitFailed, "NetworkingInitFailed"},
		{HostNotResolved, "HostNotResolved"},
		{ConnectFailed, "ConnectFailed"},
		{SendFailed, "SendFailed"},
		{ConnectionClosed, "ConnectionClosed"},
		{Timeout, "Timeout"},
		{WouldBlock, "WouldBlock"},
		{AlreadyOpen, "AlreadyOpen"},
		{BindFailed, "BindFailed"},
		{ListenFailed, "ListenFailed"},
		{NotOpen, "NotOpen"},
		{Other, "Other"},
		{SocketError(99), "SocketError(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.String())
		})
	}
}

// TestSocketError_ErrorsIs verifies that the taxonomy plays along with the
// standard errors package, wrapped or not.
func TestSocketError_ErrorsIs(t *testing.T) {
	var err error = ConnectionClosed
	assert.True(t, errors.Is(err, ConnectionClosed))
	assert.False(t, errors.Is(err, Timeout))

	wrapped := fmt.Errorf("receive failed: %w", WouldBlock)
	assert.True(t, errors.Is(wrapped, WouldBlock))

	var sockErr SocketError
	assert.True(t, errors.As(wrapped, &sockErr))
	assert.Equal(t, WouldBlock, sockErr)
}

// TestSocketError_Messages spot-checks the human-readable descriptions.
func TestSocketError_Messages(t *testing.T) {
	assert.NotEmpty(t, NotConnected.Error())
	assert.NotEqual(t, NotConnected.Error(), AlreadyConnected.Error())
	assert.Equal(t, "other system error", Other.Error())
}
