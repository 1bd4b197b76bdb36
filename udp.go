package netsock

import (
	"github.com/sirupsen/logrus"

	"github.com/Youda008/CppUtils-Network/netaddr"
	"github.com/Youda008/CppUtils-Network/syserr"
)

// UDPSocket sends and receives single datagrams. It is connectionless:
// there is no connect/disconnect state, only open and closed.
type UDPSocket struct {
	sock
}

// NewUDPSocket returns a closed UDP socket.
func NewUDPSocket() *UDPSocket {
	return &UDPSocket{sock: newSock()}
}

// Take transfers handle ownership into a new socket and leaves u invalid.
func (u *UDPSocket) Take() *UDPSocket {
	return &UDPSocket{sock: u.sock.take()}
}

// Open creates the datagram socket. A non-zero port binds it so that
// datagrams can be received on that port; with port 0 the binding is
// skipped entirely and the OS assigns an ephemeral source port on the
// first send, which suits callers that only intend to send.
//
// TODO: support IPv6 datagram sockets; currently the socket is IPv4.
func (u *UDPSocket) Open(port uint16) error {
	if u.isOpen() {
		return AlreadyOpen
	}
	if err := initNetworking(); err != nil {
		u.lastErr = syserr.FromError(err)
		return NetworkingInitFailed
	}

	local := netaddr.Endpoint{Addr: netaddr.IPFromV4(netaddr.IPv4Addr{0, 0, 0, 0}), Port: port}

	fd, err := sysSocketDgram(local.Addr.Family())
	if err != nil {
		u.lastErr = syserr.FromError(err)
		return Other
	}

	if port != 0 {
		sa, _ := local.Sockaddr()
		if err := sysBind(fd, sa); err != nil {
			u.lastErr = syserr.FromError(err)
			if closeErr := sysClose(fd); closeErr != nil {
				logrus.WithFields(logrus.Fields{
					"function": "UDPSocket.Open",
					"fd":       fd,
					"error":    closeErr.Error(),
				}).Fatal("Close failed on a socket this library validated")
			}
			return BindFailed
		}
	}

	u.sock = adoptSock(fd)
	logrus.WithFields(logrus.Fields{
		"function": "UDPSocket.Open",
		"port":     port,
	}).Debug("UDP socket opened")
	return nil
}

// Close releases the handle. It fails with NotOpen when the socket is not
// open.
func (u *UDPSocket) Close() error {
	if !u.isOpen() {
		return NotOpen
	}
	u.shutdownAndClose()
	return nil
}

// IsOpen reports whether the socket is open.
func (u *UDPSocket) IsOpen() bool {
	return u.isOpen()
}

// SendTo sends the bytes as one datagram to the given endpoint. It fails
// with NotOpen on a closed socket and SendFailed when the OS rejected the
// datagram.
func (u *UDPSocket) SendTo(endpoint netaddr.Endpoint, data []byte) error {
	if !u.isOpen() {
		return NotOpen
	}

	sa, err := endpoint.Sockaddr()
	if err != nil {
		u.lastErr = syserr.Unknown
		return SendFailed
	}

	if err := sysSendto(u.fd, data, sa); err != nil {
		u.lastErr = syserr.FromError(err)
		return SendFailed
	}

	u.lastErr = syserr.Success
	return nil
}

// RecvFrom receives one datagram into the buffer and recovers the sender's
// endpoint from the OS socket address. Error results are classified like
// TCPClient.Receive, except that UDP has no ConnectionClosed concept.
func (u *UDPSocket) RecvFrom(buffer []byte) (int, netaddr.Endpoint, error) {
	if !u.isOpen() {
		return 0, netaddr.Endpoint{}, NotOpen
	}

	for {
		received, sa, err := sysRecvfrom(u.fd, buffer)
		if err != nil {
			if isInterrupted(err) {
				continue
			}
			u.lastErr = syserr.FromError(err)
			return 0, netaddr.Endpoint{}, u.classifyRecvError()
		}

		sender, err := netaddr.EndpointFromSockaddr(sa)
		if err != nil {
			// The OS can only report a family this process itself used to
			// open the socket.
			logrus.WithFields(logrus.Fields{
				"function": "UDPSocket.RecvFrom",
				"error":    err.Error(),
			}).Fatal("Recvfrom returned unexpected address family")
		}

		u.lastErr = syserr.Success
		return received, sender, nil
	}
}

func (u *UDPSocket) classifyRecvError() error {
	switch {
	case !u.blocking && syserr.IsWouldBlock(u.lastErr):
		return WouldBlock
	case syserr.IsTimeout(u.lastErr):
		return Timeout
	default:
		return Other
	}
}
