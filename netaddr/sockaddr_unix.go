//go:build unix

package netaddr

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Sockaddr converts the endpoint into the OS socket address used by connect,
// bind and sendto. The address family follows the IP version tag and the
// port is converted to network byte order by the syscall layer. An unset
// address fails with ErrUnsetAddress.
func (ep Endpoint) Sockaddr() (unix.Sockaddr, error) {
	switch ep.Addr.Version() {
	case IPVer4:
		return &unix.SockaddrInet4{
			Port: int(ep.Port),
			Addr: [4]byte(ep.Addr.As4()),
		}, nil
	case IPVer6:
		return &unix.SockaddrInet6{
			Port: int(ep.Port),
			Addr: [16]byte(ep.Addr.As6()),
		}, nil
	default:
		return nil, ErrUnsetAddress
	}
}

// EndpointFromSockaddr recovers an Endpoint from an OS socket address as
// returned by accept, recvfrom or getsockname. Address families other than
// AF_INET and AF_INET6 fail with ErrUnsupportedFamily.
func EndpointFromSockaddr(sa unix.Sockaddr) (Endpoint, error) {
	switch sa := sa.(type) {
	case *unix.SockaddrInet4:
		return Endpoint{Addr: IPFromV4(IPv4Addr(sa.Addr)), Port: uint16(sa.Port)}, nil
	case *unix.SockaddrInet6:
		return Endpoint{Addr: IPFromV6(IPv6Addr(sa.Addr)), Port: uint16(sa.Port)}, nil
	default:
		return Endpoint{}, fmt.Errorf("%w: %T", ErrUnsupportedFamily, sa)
	}
}

// Family returns the AF_INET or AF_INET6 constant matching the IP version.
// It panics on an unset address; callers must validate the address first.
func (a IPAddr) Family() int {
	switch a.ver {
	case IPVer4:
		return unix.AF_INET
	case IPVer6:
		return unix.AF_INET6
	default:
		panic("netaddr: Family called on an unset IP address")
	}
}
