//go:build unix

package syserr

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"
)

// TestFromError verifies extraction of raw OS codes from syscall errors,
// including wrapped ones.
func TestFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"nil error", nil, Success},
		{"bare errno", unix.ECONNREFUSED, Code(unix.ECONNREFUSED)},
		{"wrapped errno", fmt.Errorf("connect: %w", unix.EAGAIN), Code(unix.EAGAIN)},
		{"no errno inside", errors.New("resolver gave up"), Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FromError(tt.err))
		})
	}
}

// TestErrorString verifies the strerror-style rendering contract.
func TestErrorString(t *testing.T) {
	msg := ErrorString(Code(unix.ECONNREFUSED))
	assert.NotEmpty(t, msg)
	assert.Contains(t, strings.ToLower(msg), "refused")
	assert.False(t, strings.HasSuffix(msg, "\n"))
	assert.False(t, strings.HasSuffix(msg, "\r"))
	assert.LessOrEqual(t, len(msg), maxErrorStringLen)

	assert.Equal(t, "unknown error", ErrorString(Unknown))
}

// TestClassification verifies the would-block and timeout code tables.
func TestClassification(t *testing.T) {
	tests := []struct {
		name       string
		code       Code
		wouldBlock bool
		timeout    bool
	}{
		{"EAGAIN", Code(unix.EAGAIN), true, true},
		{"EWOULDBLOCK", Code(unix.EWOULDBLOCK), true, true},
		{"ETIMEDOUT", Code(unix.ETIMEDOUT), false, true},
		{"ECONNREFUSED", Code(unix.ECONNREFUSED), false, false},
		{"Success", Success, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wouldBlock, IsWouldBlock(tt.code))
			assert.Equal(t, tt.timeout, IsTimeout(tt.code))
		})
	}
}
