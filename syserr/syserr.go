// Package syserr provides a portable view of raw OS socket error codes:
// capturing the last error of a system call, rendering it as human-readable
// text, and classifying it into the logical categories whose numeric codes
// differ between platforms.
package syserr

import (
	"errors"
	"strings"
	"syscall"
)

// Code is a raw OS error code (errno on POSIX systems).
type Code int32

// Success is the code recorded after a system call that reported no error.
const Success Code = 0

// Unknown is recorded when a failure did not carry an OS error code at all,
// for example a resolver error.
const Unknown Code = -1

// maxErrorStringLen bounds the rendered message, mirroring the fixed-size
// buffers used by the platform message sources.
const maxErrorStringLen = 256

// FromError extracts the raw OS error code out of an error returned by a
// system call. It must be applied to the error of the call in question
// before issuing any further system call, because only that error carries
// the code. A nil error yields Success; an error that wraps no OS code
// yields Unknown.
func FromError(err error) Code {
	if err == nil {
		return Success
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return Code(errno)
	}
	return Unknown
}

// ErrorString renders the raw code as the platform's English error message,
// trimmed of trailing line terminators and bounded to a fixed length.
func ErrorString(code Code) string {
	if code == Unknown {
		return "unknown error"
	}
	msg := syscall.Errno(code).Error()
	msg = strings.TrimRight(msg, "\r\n")
	if len(msg) > maxErrorStringLen {
		msg = msg[:maxErrorStringLen]
	}
	return msg
}
