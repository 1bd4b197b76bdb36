package netsock

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Youda008/CppUtils-Network/netaddr"
	"github.com/Youda008/CppUtils-Network/syserr"
)

// listenBacklog is the system queue length for incoming connection requests.
const listenBacklog = 16

// TCPListener accepts incoming TCP connections and produces a TCPClient for
// every accepted peer.
//
// Unlike the other socket types, Close may be called from a different
// goroutine while Accept blocks: the listener carries a wake pipe that is
// polled together with the listening descriptor, so a concurrent Close
// wakes the blocked Accept deterministically instead of closing the handle
// out from under it.
type TCPListener struct {
	sock
	mu   sync.Mutex
	wake [2]int // read end polled by Accept, write end signalled by Close
}

// NewTCPListener returns a closed listener.
func NewTCPListener() *TCPListener {
	return &TCPListener{sock: newSock(), wake: [2]int{invalidFd, invalidFd}}
}

// Open creates a listening socket on the given TCP port. Port 0 lets the OS
// assign an ephemeral port, which Port then reports. It fails with
// AlreadyOpen when the listener is already listening, BindFailed when the
// port could not be bound and ListenFailed when the bound socket could not
// enter the listening state; both of the latter release the half-created
// handle first.
//
// TODO: support IPv6 listeners; currently the listening socket is IPv4.
func (l *TCPListener) Open(port uint16) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.isOpen() {
		return AlreadyOpen
	}
	if err := initNetworking(); err != nil {
		l.lastErr = syserr.FromError(err)
		return NetworkingInitFailed
	}

	// Bind to the wildcard address on the requested port.
	local := netaddr.Endpoint{Addr: netaddr.IPFromV4(netaddr.IPv4Addr{0, 0, 0, 0}), Port: port}

	fd, err := sysSocketStream(local.Addr.Family())
	if err != nil {
		l.lastErr = syserr.FromError(err)
		return Other
	}

	sa, _ := local.Sockaddr()
	if err := sysBind(fd, sa); err != nil {
		l.lastErr = syserr.FromError(err)
		l.discardHalfOpen(fd)
		return BindFailed
	}

	if err := sysListen(fd, listenBacklog); err != nil {
		l.lastErr = syserr.FromError(err)
		l.discardHalfOpen(fd)
		return ListenFailed
	}

	wake, err := sysPipe()
	if err != nil {
		l.lastErr = syserr.FromError(err)
		l.discardHalfOpen(fd)
		return Other
	}

	l.sock = adoptSock(fd)
	l.wake = wake
	logrus.WithFields(logrus.Fields{
		"function": "TCPListener.Open",
		"port":     port,
	}).Debug("TCP listener opened")
	return nil
}

// Accept blocks until a peer connects or the listener is closed from
// elsewhere, then returns a connected TCPClient adopting the accepted
// handle together with the peer's endpoint. When the listener is (or
// becomes) closed it fails with NotOpen; on a non-blocking listener with no
// pending connection it fails with WouldBlock.
func (l *TCPListener) Accept() (*TCPClient, netaddr.Endpoint, error) {
	for {
		l.mu.Lock()
		if !l.isOpen() {
			l.mu.Unlock()
			return nil, netaddr.Endpoint{}, NotOpen
		}
		fd, wakeR, blocking := l.fd, l.wake[0], l.blocking
		l.mu.Unlock()

		if blocking {
			readable, err := sysSelectRead([]int{fd, wakeR}, nil)
			if err != nil {
				// A concurrent Close may invalidate the polled descriptors;
				// anything else is a real multiplex failure.
				l.mu.Lock()
				defer l.mu.Unlock()
				if !l.isOpen() {
					return nil, netaddr.Endpoint{}, NotOpen
				}
				l.lastErr = syserr.FromError(err)
				return nil, netaddr.Endpoint{}, Other
			}
			if readable[1] {
				// Woken by Close.
				return nil, netaddr.Endpoint{}, NotOpen
			}
			if !readable[0] {
				continue
			}
		}

		clientFd, sa, err := sysAccept(fd)
		if err != nil {
			code := syserr.FromError(err)
			if blocking && syserr.IsWouldBlock(code) {
				// The pending connection was aborted between the readiness
				// report and the accept; wait for the next one.
				continue
			}
			l.mu.Lock()
			l.lastErr = code
			open := l.isOpen()
			l.mu.Unlock()
			if !open {
				return nil, netaddr.Endpoint{}, NotOpen
			}
			if syserr.IsWouldBlock(code) {
				return nil, netaddr.Endpoint{}, WouldBlock
			}
			return nil, netaddr.Endpoint{}, Other
		}

		peer, err := netaddr.EndpointFromSockaddr(sa)
		if err != nil {
			// The OS can only report a family this process itself used to
			// open the socket.
			logrus.WithFields(logrus.Fields{
				"function": "TCPListener.Accept",
				"error":    err.Error(),
			}).Fatal("Accept returned unexpected address family")
		}

		logrus.WithFields(logrus.Fields{
			"function": "TCPListener.Accept",
			"peer":     peer.String(),
		}).Debug("Accepted TCP connection")
		return &TCPClient{sock: adoptSock(clientFd)}, peer, nil
	}
}

// Close stops listening and releases the handle, waking any Accept blocked
// on it. It fails with NotOpen when the listener is not listening.
func (l *TCPListener) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.isOpen() {
		return NotOpen
	}

	// Signal first, then release: a blocked Accept wakes either on the wake
	// byte or on the descriptors turning invalid, and the byte is written
	// before any descriptor number can be reused.
	if _, err := sysSend(l.wake[1], []byte{0}); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "TCPListener.Close",
			"error":    err.Error(),
		}).Warn("Failed to signal the accept wake pipe")
	}

	l.closeFd()
	if err := sysClose(l.wake[1]); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "TCPListener.Close",
			"error":    err.Error(),
		}).Fatal("Close failed on the wake pipe")
	}
	if err := sysClose(l.wake[0]); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "TCPListener.Close",
			"error":    err.Error(),
		}).Fatal("Close failed on the wake pipe")
	}
	l.wake = [2]int{invalidFd, invalidFd}
	return nil
}

// IsOpen reports whether the listener is currently listening.
func (l *TCPListener) IsOpen() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.isOpen()
}

// discardHalfOpen releases a descriptor that never became the listener's
// handle.
func (l *TCPListener) discardHalfOpen(fd int) {
	if err := sysClose(fd); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "TCPListener.discardHalfOpen",
			"fd":       fd,
			"error":    err.Error(),
		}).Fatal("Close failed on a socket this library validated")
	}
}
