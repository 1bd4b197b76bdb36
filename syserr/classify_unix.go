//go:build unix

package syserr

import "golang.org/x/sys/unix"

// IsWouldBlock reports whether the code means "operation cannot complete
// immediately" on a non-blocking socket.
func IsWouldBlock(code Code) bool {
	return code == Code(unix.EAGAIN) || code == Code(unix.EWOULDBLOCK)
}

// IsTimeout reports whether the code matches a receive-timeout expiry.
// POSIX systems report SO_RCVTIMEO expiry with the same code as would-block,
// so receive paths must test IsWouldBlock on non-blocking sockets before
// falling back to this.
func IsTimeout(code Code) bool {
	return code == Code(unix.EAGAIN) || code == Code(unix.EWOULDBLOCK) || code == Code(unix.ETIMEDOUT)
}
