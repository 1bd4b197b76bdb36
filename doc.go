// Package netsock is a cross-platform abstraction over low-level system
// socket calls. It normalizes TCP/UDP connection lifecycle, addressing and
// error reporting behind one contract, so that code built on top of it does
// not care which socket API the operating system exposes.
//
// # Architecture
//
// The package is a library with synchronous, optionally-blocking primitives
// only: no framing, no event loop, no background goroutines. Every
// operation is a system call on the caller's goroutine, blocking according
// to the socket's blocking mode. Three packages make up the module:
//
//   - netaddr: fixed-size binary address types (IPv4, IPv6, MAC), the
//     IPAddr tagged union, the Endpoint value and its conversion to and
//     from OS socket addresses.
//   - syserr: capture, rendering and classification of raw OS error codes.
//   - netsock (this package): the socket lifecycle state machines built on
//     the two above.
//
// Each socket type owns its OS handle exclusively. Ownership moves with
// Take and ends with Disconnect/Close; there is no sharing and no reference
// counting. Expected outcomes come back as SocketError values; a syscall
// failing in a way that is impossible for a handle this library created and
// validated is treated as a programming-invariant violation and aborts the
// process with a diagnostic.
//
// # TCP
//
//	client := netsock.NewTCPClient()
//	if err := client.Connect("example.com", 7777); err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Disconnect()
//
//	if err := client.Send(request); err != nil {
//	    log.Fatal(err)
//	}
//	response := make([]byte, 1024)
//	n, err := client.Receive(response)
//
// The listening side produces a TCPClient per accepted peer:
//
//	listener := netsock.NewTCPListener()
//	if err := listener.Open(7777); err != nil {
//	    log.Fatal(err)
//	}
//	peer, peerEndpoint, err := listener.Accept()
//
// Accept may be interrupted from another goroutine by closing the listener;
// the listener polls a wake pipe alongside the listening descriptor, so the
// blocked Accept returns NotOpen instead of racing a closed handle.
//
// # UDP
//
//	udp := netsock.NewUDPSocket()
//	if err := udp.Open(7777); err != nil {
//	    log.Fatal(err)
//	}
//	n, sender, err := udp.RecvFrom(buffer)
//
// # Readiness polling
//
// WaitForAny reports which of a set of open sockets currently have data to
// read:
//
//	ready, err := netsock.WaitForAny([]netsock.Socket{c1, c2, c3}, time.Second)
//
// It is select(2)-class: one call over the whole set, with the usual
// descriptor-set size ceiling and O(n) scan cost. The order of the returned
// subset is unspecified.
//
// # Error reporting
//
// Methods return nil on success and a SocketError otherwise. The taxonomy
// covers wrong call order (AlreadyConnected, NotConnected, AlreadyOpen,
// NotOpen), environment failures (NetworkingInitFailed, HostNotResolved,
// ConnectFailed, BindFailed, ListenFailed) and I/O outcomes (SendFailed,
// ConnectionClosed, Timeout, WouldBlock, Other). When Other needs detail,
// LastSystemError returns the raw OS code of the most recent operation and
// syserr.ErrorString renders it. Partial I/O is never an error by itself:
// Send either completes fully or fails, and Receive always reports how many
// bytes it obtained alongside the outcome.
package netsock
