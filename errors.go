package netsock

import "fmt"

// SocketError is the unified taxonomy of socket operation outcomes, because
// error codes from system calls vary from OS to OS. It implements error;
// successful operations return nil rather than Success. Callers branch on
// the values with errors.Is and reach for LastSystemError when the Other
// catch-all needs detail.
type SocketError uint8

const (
	// Success means the operation completed. Kept for taxonomy completeness;
	// methods signal it by returning a nil error.
	Success SocketError = 0

	// wrong call order, nothing to do with the system sockets

	// AlreadyConnected means connect was called on a socket that is already
	// connected. Call Disconnect first.
	AlreadyConnected SocketError = 1
	// NotConnected means the operation needs a connected socket. Call
	// Connect first.
	NotConnected SocketError = 2

	// errors related to a connect attempt

	// NetworkingInitFailed means the underlying networking subsystem could
	// not be initialized.
	NetworkingInitFailed SocketError = 10
	// HostNotResolved means the hostname could not be resolved to an IP
	// address.
	HostNotResolved SocketError = 11
	// ConnectFailed means the target could not be connected to, either it is
	// down or the port is closed.
	ConnectFailed SocketError = 12

	// errors related to a send operation

	// SendFailed means a send system call failed. Call LastSystemError for
	// more info.
	SendFailed SocketError = 20

	// errors related to a receive operation

	// ConnectionClosed means the peer has orderly closed the connection.
	ConnectionClosed SocketError = 30
	// Timeout means the receive timeout configured with SetTimeout expired.
	Timeout SocketError = 31
	// WouldBlock means the socket is in non-blocking mode and there is no
	// data in the system input buffer.
	WouldBlock SocketError = 32

	// errors related to opening a server

	// AlreadyOpen means the socket is already bound or listening. Call Close
	// first.
	AlreadyOpen SocketError = 40
	// BindFailed means the socket could not be bound to the requested port.
	BindFailed SocketError = 41
	// ListenFailed means the bound socket could not be switched to the
	// listening state.
	ListenFailed SocketError = 42
	// NotOpen means the operation needs an open socket. Call Open first.
	NotOpen SocketError = 43

	// Other is the catch-all for uncategorized system errors. Call
	// LastSystemError for more info.
	Other SocketError = 255
)

// String returns the identifier-style name of the error value.
func (e SocketError) String() string {
	switch e {
	case Success:
		return "Success"
	case AlreadyConnected:
		return "AlreadyConnected"
	case NotConnected:
		return "NotConnected"
	case NetworkingInitFailed:
		return "NetworkingInitFailed"
	case HostNotResolved:
		return "HostNotResolved"
	case ConnectFailed:
		return "ConnectFailed"
	case SendFailed:
		return "SendFailed"
	case ConnectionClosed:
		return "ConnectionClosed"
	case Timeout:
		return "Timeout"
	case WouldBlock:
		return "WouldBlock"
	case AlreadyOpen:
		return "AlreadyOpen"
	case BindFailed:
		return "BindFailed"
	case ListenFailed:
		return "ListenFailed"
	case NotOpen:
		return "NotOpen"
	case Other:
		return "Other"
	default:
		return fmt.Sprintf("SocketError(%d)", uint8(e))
	}
}

// Error describes the outcome in plain words.
func (e SocketError) Error() string {
	switch e {
	case Success:
		return "the operation was successful"
	case AlreadyConnected:
		return "the socket is already connected"
	case NotConnected:
		return "the socket is not connected"
	case NetworkingInitFailed:
		return "the networking subsystem could not be initialized"
	case HostNotResolved:
		return "the hostname could not be resolved to an IP address"
	case ConnectFailed:
		return "could not connect to the target host"
	case SendFailed:
		return "the send operation failed"
	case ConnectionClosed:
		return "the peer has closed the connection"
	case Timeout:
		return "the operation timed out"
	case WouldBlock:
		return "the non-blocking socket has no data available"
	case AlreadyOpen:
		return "the socket is already open"
	case BindFailed:
		return "the socket could not be bound to the port"
	case ListenFailed:
		return "the socket could not be put into listening state"
	case NotOpen:
		return "the socket is not open"
	default:
		return "other system error"
	}
}
