package netsock

import "time"

// Socket is any open socket of this package that can take part in readiness
// polling: *TCPClient, *TCPListener and *UDPSocket all satisfy it. The
// interface is deliberately closed over this package's types; a descriptor
// that did not come out of this library has no place in the poll set.
type Socket interface {
	pollDescriptor() (fd int, open bool)
}

func (s *sock) pollDescriptor() (int, bool) {
	return s.fd, s.fd != invalidFd
}

var (
	_ Socket = (*TCPClient)(nil)
	_ Socket = (*TCPListener)(nil)
	_ Socket = (*UDPSocket)(nil)
)

// WaitForAny waits up to timeout for any of the given sockets to have data
// available to read and returns the subset that does. Readiness here is
// read-oriented only: a ready TCPListener has a connection to accept, a
// ready client or UDP socket has data (or an EOF) to receive.
//
// Sockets that are not open cannot become ready and are skipped. The order
// of the returned subset is unspecified. The returned error reports a
// failure of the underlying multiplex call itself, including descriptors
// beyond the platform's select set size; an empty result with a nil error
// simply means the timeout elapsed.
func WaitForAny(sockets []Socket, timeout time.Duration) ([]Socket, error) {
	fds := make([]int, 0, len(sockets))
	owners := make([]Socket, 0, len(sockets))
	for _, s := range sockets {
		fd, open := s.pollDescriptor()
		if !open {
			continue
		}
		fds = append(fds, fd)
		owners = append(owners, s)
	}
	if len(fds) == 0 {
		return nil, nil
	}

	readable, err := sysSelectRead(fds, &timeout)
	if err != nil {
		return nil, err
	}

	var ready []Socket
	for i, isReady := range readable {
		if isReady {
			ready = append(ready, owners[i])
		}
	}
	return ready, nil
}
