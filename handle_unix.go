//go:build unix

package netsock

import (
	"errors"
	"time"

	"golang.org/x/sys/unix"
)

// Thin wrappers around the POSIX socket surface. All platform-specific
// calls of the socket lifecycle go through this file, so a port to another
// syscall surface replaces these and nothing above them.

func sysSocketStream(family int) (int, error) {
	return unix.Socket(family, unix.SOCK_STREAM, 0)
}

func sysSocketDgram(family int) (int, error) {
	return unix.Socket(family, unix.SOCK_DGRAM, 0)
}

func sysConnect(fd int, sa unix.Sockaddr) error {
	return unix.Connect(fd, sa)
}

func sysBind(fd int, sa unix.Sockaddr) error {
	return unix.Bind(fd, sa)
}

func sysListen(fd int, backlog int) error {
	return unix.Listen(fd, backlog)
}

func sysAccept(fd int) (int, unix.Sockaddr, error) {
	for {
		nfd, sa, err := unix.Accept(fd)
		if err != nil && isInterrupted(err) {
			continue
		}
		return nfd, sa, err
	}
}

func sysSend(fd int, p []byte) (int, error) {
	return unix.Write(fd, p)
}

func sysRecv(fd int, p []byte) (int, error) {
	return unix.Read(fd, p)
}

func sysSendto(fd int, p []byte, to unix.Sockaddr) error {
	return unix.Sendto(fd, p, 0, to)
}

func sysRecvfrom(fd int, p []byte) (int, unix.Sockaddr, error) {
	n, from, err := unix.Recvfrom(fd, p, 0)
	return n, from, err
}

func sysShutdown(fd int) error {
	return unix.Shutdown(fd, unix.SHUT_RDWR)
}

func sysClose(fd int) error {
	return unix.Close(fd)
}

func sysSetBlocking(fd int, enable bool) error {
	return unix.SetNonblock(fd, !enable)
}

// sysSetRecvTimeout configures SO_RCVTIMEO. A zero duration disables the
// timeout, returning the socket to indefinite blocking.
func sysSetRecvTimeout(fd int, timeout time.Duration) error {
	tv := unix.NsecToTimeval(timeout.Nanoseconds())
	return unix.SetsockoptTimeval(fd, unix.SOL_SOCKET, unix.SO_RCVTIMEO, &tv)
}

func sysGetsockname(fd int) (unix.Sockaddr, error) {
	return unix.Getsockname(fd)
}

func sysPipe() ([2]int, error) {
	var p [2]int
	err := unix.Pipe(p[:])
	return p, err
}

func isNotConnected(err error) bool {
	return errors.Is(err, unix.ENOTCONN)
}

func isInterrupted(err error) bool {
	return errors.Is(err, unix.EINTR)
}
