package netsock

import (
	"github.com/sirupsen/logrus"

	"github.com/Youda008/CppUtils-Network/netaddr"
	"github.com/Youda008/CppUtils-Network/syserr"
)

// receiveOnceBufSize is the size of the internal scratch buffer used by
// ReceiveOnce. 16 KiB covers standard MTU as well as jumbo-frame payloads.
const receiveOnceBufSize = 16 * 1024

// TCPClient is the connecting side of a TCP connection, or the peer-side
// socket produced by TCPListener.Accept. Once disconnected, an instance is
// terminal; create a new one to connect again.
//
// All operations are synchronous OS calls on the caller's goroutine and
// block according to the socket's blocking mode. A TCPClient must not be
// used from multiple goroutines at once.
type TCPClient struct {
	sock
	scratch []byte
}

// NewTCPClient returns a disconnected client.
func NewTCPClient() *TCPClient {
	return &TCPClient{sock: newSock()}
}

// Take transfers handle ownership into a new client and leaves c invalid.
func (c *TCPClient) Take() *TCPClient {
	return &TCPClient{sock: c.sock.take()}
}

// Connect resolves host to one or more candidate addresses and connects to
// the first one that answers, regardless of IP version. It fails with
// AlreadyConnected when the client is already connected, HostNotResolved
// when the resolver finds nothing, and ConnectFailed when no candidate
// accepted the connection.
func (c *TCPClient) Connect(host string, port uint16) error {
	if c.isOpen() {
		return AlreadyConnected
	}
	if err := initNetworking(); err != nil {
		c.lastErr = syserr.FromError(err)
		return NetworkingInitFailed
	}

	candidates, err := lookupCandidates(host)
	if err != nil || len(candidates) == 0 {
		c.lastErr = syserr.FromError(err)
		logrus.WithFields(logrus.Fields{
			"function": "TCPClient.Connect",
			"host":     host,
		}).Debug("Hostname resolution failed")
		return HostNotResolved
	}

	var result error = ConnectFailed
	for _, addr := range candidates {
		result = c.connectEndpoint(netaddr.Endpoint{Addr: addr, Port: port})
		if result == nil {
			break
		}
	}
	return result
}

// ConnectAddr connects directly to the given IP address, skipping hostname
// resolution. The contract is otherwise the same as Connect.
func (c *TCPClient) ConnectAddr(addr netaddr.IPAddr, port uint16) error {
	if c.isOpen() {
		return AlreadyConnected
	}
	if err := initNetworking(); err != nil {
		c.lastErr = syserr.FromError(err)
		return NetworkingInitFailed
	}
	return c.connectEndpoint(netaddr.Endpoint{Addr: addr, Port: port})
}

// connectEndpoint opens a socket for the endpoint's family and issues the
// connect. A failed connect closes the just-opened handle again, so failure
// leaves the client exactly as it was.
func (c *TCPClient) connectEndpoint(ep netaddr.Endpoint) error {
	sa, err := ep.Sockaddr()
	if err != nil {
		c.lastErr = syserr.Unknown
		return ConnectFailed
	}

	fd, err := sysSocketStream(ep.Addr.Family())
	if err != nil {
		c.lastErr = syserr.FromError(err)
		return Other
	}

	if err := sysConnect(fd, sa); err != nil {
		c.lastErr = syserr.FromError(err)
		if closeErr := sysClose(fd); closeErr != nil {
			logrus.WithFields(logrus.Fields{
				"function": "TCPClient.connectEndpoint",
				"fd":       fd,
				"error":    closeErr.Error(),
			}).Fatal("Close failed on a socket this library validated")
		}
		return ConnectFailed
	}

	c.sock = adoptSock(fd)
	logrus.WithFields(logrus.Fields{
		"function": "TCPClient.connectEndpoint",
		"endpoint": ep.String(),
	}).Debug("TCP connection established")
	return nil
}

// Disconnect performs an orderly shutdown and releases the handle. It fails
// with NotConnected when there is nothing to disconnect. After a successful
// Disconnect the instance is terminally disconnected.
func (c *TCPClient) Disconnect() error {
	if !c.isOpen() {
		return NotConnected
	}
	c.shutdownAndClose()
	return nil
}

// IsConnected reports whether the client currently holds a connection.
func (c *TCPClient) IsConnected() bool {
	return c.isOpen()
}

// IsValid reports whether the client holds a usable handle. This needs to
// be checked on the result of TCPListener.Accept before use.
func (c *TCPClient) IsValid() bool {
	return c.isOpen()
}

// Send writes all the given bytes to the socket. When the system does not
// accept the whole amount at once, the call repeats the system calls until
// everything is written. On SendFailed the amount actually transmitted is
// undefined; the call is all-or-error.
func (c *TCPClient) Send(data []byte) error {
	if !c.isOpen() {
		return NotConnected
	}

	for len(data) > 0 {
		sent, err := sysSend(c.fd, data)
		if err != nil {
			if isInterrupted(err) {
				continue
			}
			c.lastErr = syserr.FromError(err)
			return SendFailed
		}
		data = data[sent:]
	}

	c.lastErr = syserr.Success
	return nil
}

// Receive fills the whole buffer, repeating the system calls when the
// requested amount does not arrive at once. It returns how many bytes were
// actually obtained together with the outcome:
//
//   - nil when the buffer was filled completely;
//   - ConnectionClosed when the peer orderly closed the connection, in
//     which case the local handle is released and the client is terminally
//     disconnected;
//   - WouldBlock on a non-blocking socket with no more data available;
//   - Timeout when the receive timeout configured with SetTimeout expired;
//   - Other for anything else.
func (c *TCPClient) Receive(buffer []byte) (int, error) {
	if !c.isOpen() {
		return 0, NotConnected
	}

	total := 0
	for total < len(buffer) {
		received, err := sysRecv(c.fd, buffer[total:])
		if err != nil {
			if isInterrupted(err) {
				continue
			}
			c.lastErr = syserr.FromError(err)
			return total, c.classifyRecvError()
		}
		if received == 0 {
			// Peer closed, so let's close on our side too.
			c.closeFd()
			return total, ConnectionClosed
		}
		total += received
	}

	c.lastErr = syserr.Success
	return total, nil
}

// ReceiveOnce issues exactly one receive system call and returns whatever
// arrived, up to an internal scratch buffer's worth. The returned slice is
// a fresh copy owned by the caller. Zero-byte and error results are
// classified exactly like Receive.
func (c *TCPClient) ReceiveOnce() ([]byte, error) {
	if !c.isOpen() {
		return nil, NotConnected
	}
	if c.scratch == nil {
		c.scratch = make([]byte, receiveOnceBufSize)
	}

	for {
		received, err := sysRecv(c.fd, c.scratch)
		if err != nil {
			if isInterrupted(err) {
				continue
			}
			c.lastErr = syserr.FromError(err)
			return nil, c.classifyRecvError()
		}
		if received == 0 {
			c.closeFd()
			return nil, ConnectionClosed
		}
		data := make([]byte, received)
		copy(data, c.scratch[:received])
		c.lastErr = syserr.Success
		return data, nil
	}
}

// classifyRecvError maps the recorded OS code of a failed receive onto the
// taxonomy. Non-blocking would-block is tested first because POSIX reports
// it with the same code as a receive-timeout expiry.
func (c *TCPClient) classifyRecvError() error {
	switch {
	case !c.blocking && syserr.IsWouldBlock(c.lastErr):
		return WouldBlock
	case syserr.IsTimeout(c.lastErr):
		return Timeout
	default:
		return Other
	}
}
