package netsock

import (
	"fmt"
	"net"

	"github.com/Youda008/CppUtils-Network/netaddr"
)

// lookupCandidates resolves a hostname to its addresses in resolver order,
// IPv4 or IPv6 alike. The system resolver (getaddrinfo-class) is consulted,
// so hosts files and local naming services apply.
func lookupCandidates(host string) ([]netaddr.IPAddr, error) {
	ips, err := net.LookupIP(host)
	if err != nil {
		return nil, err
	}

	addrs := make([]netaddr.IPAddr, 0, len(ips))
	for _, ip := range ips {
		var addr netaddr.IPAddr
		if ip4 := ip.To4(); ip4 != nil {
			addr, err = netaddr.IPFromBytes(ip4)
		} else {
			addr, err = netaddr.IPFromBytes(ip.To16())
		}
		if err != nil {
			continue
		}
		addrs = append(addrs, addr)
	}
	return addrs, nil
}

// LookupAddr resolves a hostname and returns its first address, regardless
// of IP version.
func LookupAddr(host string) (netaddr.IPAddr, error) {
	addrs, err := lookupCandidates(host)
	if err != nil {
		return netaddr.IPAddr{}, err
	}
	if len(addrs) == 0 {
		return netaddr.IPAddr{}, fmt.Errorf("no addresses found for host %q", host)
	}
	return addrs[0], nil
}
