// Package netaddr provides fixed-size binary network address types and the
// Endpoint value used throughout the socket layer.
//
// Addresses are stored as raw bytes in network byte order and compared
// byte-wise. Only the port field of an Endpoint ever undergoes host/network
// byte-order conversion, and that happens exclusively at the OS sockaddr
// boundary (see the sockaddr conversion functions in this package).
package netaddr

import (
	"bytes"
	"errors"
	"fmt"
	"net"
)

// ErrInvalidAddressLength is returned when constructing an IPAddr from a byte
// sequence whose length is neither 4 nor 16.
var ErrInvalidAddressLength = errors.New("IP address can only be constructed from a buffer of size 4 or 16")

// ErrUnsupportedFamily is returned when an OS socket address belongs to an
// address family other than AF_INET or AF_INET6.
var ErrUnsupportedFamily = errors.New("socket address has an unsupported address family")

// ErrUnsetAddress is returned when an operation requires a concrete IP
// address but the IPAddr has never been assigned one.
var ErrUnsetAddress = errors.New("IP address is unset")

// IPv4Addr is an IPv4 address as 4 raw bytes in network byte order.
type IPv4Addr [4]byte

// Compare compares two addresses byte-wise and returns -1, 0 or 1.
func (a IPv4Addr) Compare(other IPv4Addr) int {
	return bytes.Compare(a[:], other[:])
}

// Less reports whether a orders before other in byte-wise comparison.
func (a IPv4Addr) Less(other IPv4Addr) bool {
	return a.Compare(other) < 0
}

// String returns the dotted-decimal form of the address.
func (a IPv4Addr) String() string {
	return net.IP(a[:]).String()
}

// IPv6Addr is an IPv6 address as 16 raw bytes in network byte order.
type IPv6Addr [16]byte

// Compare compares two addresses byte-wise and returns -1, 0 or 1.
func (a IPv6Addr) Compare(other IPv6Addr) int {
	return bytes.Compare(a[:], other[:])
}

// Less reports whether a orders before other in byte-wise comparison.
func (a IPv6Addr) Less(other IPv6Addr) bool {
	return a.Compare(other) < 0
}

// String returns the canonical textual form of the address.
func (a IPv6Addr) String() string {
	return net.IP(a[:]).String()
}

// MACAddr is a hardware address as 6 raw bytes.
type MACAddr [6]byte

// Compare compares two addresses byte-wise and returns -1, 0 or 1.
func (a MACAddr) Compare(other MACAddr) int {
	return bytes.Compare(a[:], other[:])
}

// Less reports whether a orders before other in byte-wise comparison.
func (a MACAddr) Less(other MACAddr) bool {
	return a.Compare(other) < 0
}

// String returns the colon-separated hexadecimal form of the address.
func (a MACAddr) String() string {
	return net.HardwareAddr(a[:]).String()
}

// IPVer identifies which IP version an IPAddr holds.
type IPVer uint8

const (
	// IPVerUnset marks an IPAddr that has never been assigned an address.
	IPVerUnset IPVer = 0
	// IPVer4 marks an IPv4 address.
	IPVer4 IPVer = 4
	// IPVer6 marks an IPv6 address.
	IPVer6 IPVer = 6
)

// String returns a human-readable representation of the IPVer.
func (v IPVer) String() string {
	switch v {
	case IPVerUnset:
		return "Unset"
	case IPVer4:
		return "IPv4"
	case IPVer6:
		return "IPv6"
	default:
		return fmt.Sprintf("IPVer(%d)", uint8(v))
	}
}

// IPAddr is a tagged union over IPv4 and IPv6 addresses. The zero value is
// unset; an unset address cannot take part in socket operations.
type IPAddr struct {
	ver  IPVer
	data [16]byte // only the first 4 bytes are meaningful for IPv4
}

// IPFromBytes constructs an IPAddr from raw address bytes. The slice must be
// exactly 4 bytes (IPv4) or 16 bytes (IPv6); anything else fails with
// ErrInvalidAddressLength, it is never truncated or padded.
func IPFromBytes(b []byte) (IPAddr, error) {
	var addr IPAddr
	switch len(b) {
	case 4:
		addr.ver = IPVer4
	case 16:
		addr.ver = IPVer6
	default:
		return IPAddr{}, fmt.Errorf("%w, current size: %d", ErrInvalidAddressLength, len(b))
	}
	copy(addr.data[:], b)
	return addr, nil
}

// IPFromV4 constructs an IPv4-tagged IPAddr.
func IPFromV4(a IPv4Addr) IPAddr {
	var addr IPAddr
	addr.ver = IPVer4
	copy(addr.data[:4], a[:])
	return addr
}

// IPFromV6 constructs an IPv6-tagged IPAddr.
func IPFromV6(a IPv6Addr) IPAddr {
	return IPAddr{ver: IPVer6, data: [16]byte(a)}
}

// ParseIP parses a textual IPv4 or IPv6 address into an IPAddr.
func ParseIP(s string) (IPAddr, error) {
	ip := net.ParseIP(s)
	if ip == nil {
		return IPAddr{}, fmt.Errorf("cannot parse %q as an IP address", s)
	}
	if ip4 := ip.To4(); ip4 != nil {
		return IPFromBytes(ip4)
	}
	return IPFromBytes(ip.To16())
}

// Version returns which IP version the address holds.
func (a IPAddr) Version() IPVer {
	return a.ver
}

// IsSet reports whether the address has been assigned a value.
func (a IPAddr) IsSet() bool {
	return a.ver != IPVerUnset
}

// As4 returns the address as an IPv4Addr.
// It panics if the address is not IPv4; check Version first when in doubt.
func (a IPAddr) As4() IPv4Addr {
	if a.ver != IPVer4 {
		panic("netaddr: As4 called on a " + a.ver.String() + " address")
	}
	return IPv4Addr(a.data[:4])
}

// As6 returns the address as an IPv6Addr.
// It panics if the address is not IPv6; check Version first when in doubt.
func (a IPAddr) As6() IPv6Addr {
	if a.ver != IPVer6 {
		panic("netaddr: As6 called on a " + a.ver.String() + " address")
	}
	return IPv6Addr(a.data)
}

// Bytes returns a copy of the raw address bytes: 4 for IPv4, 16 for IPv6,
// nil for an unset address.
func (a IPAddr) Bytes() []byte {
	switch a.ver {
	case IPVer4:
		b := make([]byte, 4)
		copy(b, a.data[:4])
		return b
	case IPVer6:
		b := make([]byte, 16)
		copy(b, a.data[:])
		return b
	default:
		return nil
	}
}

// Equal reports whether two addresses have the same version and bytes.
func (a IPAddr) Equal(other IPAddr) bool {
	return a.Compare(other) == 0
}

// Compare orders addresses first by version tag, then byte-wise over the raw
// representation. The ordering is implementation-defined but consistent and
// total.
func (a IPAddr) Compare(other IPAddr) int {
	if a.ver != other.ver {
		if a.ver < other.ver {
			return -1
		}
		return 1
	}
	return bytes.Compare(a.Bytes(), other.Bytes())
}

// Less reports whether a orders before other.
func (a IPAddr) Less(other IPAddr) bool {
	return a.Compare(other) < 0
}

// String returns the textual form of the address, or "invalid IP" when unset.
func (a IPAddr) String() string {
	switch a.ver {
	case IPVer4:
		return a.As4().String()
	case IPVer6:
		return a.As6().String()
	default:
		return "invalid IP"
	}
}

// Endpoint is an (IP address, port) pair identifying one side of a
// connection or datagram exchange. The port is kept in host byte order;
// conversion to network byte order happens only when building an OS
// sockaddr.
type Endpoint struct {
	Addr IPAddr
	Port uint16
}

// String returns the endpoint in "host:port" form, with IPv6 addresses
// bracketed.
func (ep Endpoint) String() string {
	return net.JoinHostPort(ep.Addr.String(), fmt.Sprintf("%d", ep.Port))
}
