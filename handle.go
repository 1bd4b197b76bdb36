package netsock

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Youda008/CppUtils-Network/netaddr"
	"github.com/Youda008/CppUtils-Network/syserr"
)

// sock is the owned socket handle embedded in every role-specific socket
// type. A handle has exactly one owner at a time: it enters a socket via
// adopt, leaves it via take, and there is no sharing or reference counting
// in between. A sock without a handle is invalid and every operation on it
// short-circuits before reaching the OS.
type sock struct {
	fd       int
	lastErr  syserr.Code
	blocking bool
}

const invalidFd = -1

func newSock() sock {
	return sock{fd: invalidFd, blocking: true}
}

// adoptSock wraps a descriptor produced by the OS (socket or accept) into an
// owning handle. Freshly created sockets start out blocking.
func adoptSock(fd int) sock {
	return sock{fd: fd, blocking: true}
}

func (s *sock) isOpen() bool {
	return s.fd != invalidFd
}

// take transfers the handle and flags out of s and leaves s invalid, with
// the last error cleared and the blocking flag reset to an inert default.
func (s *sock) take() sock {
	moved := *s
	s.fd = invalidFd
	s.lastErr = syserr.Success
	s.blocking = false
	return moved
}

// LastSystemError returns the raw OS error code captured by the most recent
// operation on this socket. Render it with syserr.ErrorString.
func (s *sock) LastSystemError() syserr.Code {
	return s.lastErr
}

// IsBlocking reports whether the socket is in blocking mode.
func (s *sock) IsBlocking() bool {
	return s.blocking
}

// SetBlocking switches the socket between blocking and non-blocking mode.
// The stored flag is updated only when the OS accepted the change; on
// failure it returns false and records the OS error.
func (s *sock) SetBlocking(enable bool) bool {
	if err := sysSetBlocking(s.fd, enable); err != nil {
		s.lastErr = syserr.FromError(err)
		return false
	}
	s.blocking = enable
	s.lastErr = syserr.Success
	return true
}

// SetTimeout sets the receive timeout at the OS level. It affects only how
// subsequent blocking receives fail (with Timeout); sends are unaffected.
// A zero duration disables the timeout. Returns false and records the OS
// error when the option could not be set.
func (s *sock) SetTimeout(timeout time.Duration) bool {
	if err := sysSetRecvTimeout(s.fd, timeout); err != nil {
		s.lastErr = syserr.FromError(err)
		return false
	}
	s.lastErr = syserr.Success
	return true
}

// Port returns the local port the socket is bound to, or 0 when the socket
// is not open or not yet bound. Useful after opening with port 0 to learn
// the port the OS picked.
func (s *sock) Port() uint16 {
	if !s.isOpen() {
		return 0
	}
	sa, err := sysGetsockname(s.fd)
	if err != nil {
		s.lastErr = syserr.FromError(err)
		return 0
	}
	local, err := netaddr.EndpointFromSockaddr(sa)
	if err != nil {
		// The OS can only report a family this library itself used to open
		// the socket.
		logrus.WithFields(logrus.Fields{
			"function": "Port",
			"fd":       s.fd,
			"error":    err.Error(),
		}).Fatal("Socket operation returned unexpected address family")
	}
	return local.Port
}

// shutdownAndClose signals both-directions shutdown and releases the
// descriptor. The handle was created and validated by this library, so a
// failure here means it has been misused or invalidated elsewhere; that is
// a programming-invariant violation and aborts the process. Shutdown alone
// may legitimately report "not connected" when the peer or the protocol has
// already dismantled the connection, which is tolerated.
func (s *sock) shutdownAndClose() {
	if err := sysShutdown(s.fd); err != nil && !isNotConnected(err) {
		logrus.WithFields(logrus.Fields{
			"function": "shutdownAndClose",
			"fd":       s.fd,
			"error":    err.Error(),
		}).Fatal("Shutdown failed on a socket this library validated")
	}
	s.closeFd()
}

// closeFd releases the descriptor without the shutdown signal. Used when
// the connection is already gone (orderly close detected by receive).
func (s *sock) closeFd() {
	if err := sysClose(s.fd); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "closeFd",
			"fd":       s.fd,
			"error":    err.Error(),
		}).Fatal("Close failed on a socket this library validated")
	}
	s.fd = invalidFd
}
