//go:build unix

package netsock

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// sysSelectRead issues one select(2) call over the given descriptors and
// reports which of them are readable. A nil timeout blocks indefinitely.
// The descriptor set is rebuilt on interruption because select mutates it,
// and the timeout is re-derived from a deadline so retries do not extend
// the overall wait.
func sysSelectRead(fds []int, timeout *time.Duration) ([]bool, error) {
	maxFd := -1
	for _, fd := range fds {
		if fd < 0 || fd >= unix.FD_SETSIZE {
			return nil, fmt.Errorf("descriptor %d does not fit into a select set (limit %d)", fd, unix.FD_SETSIZE)
		}
		if fd > maxFd {
			maxFd = fd
		}
	}

	var deadline time.Time
	if timeout != nil {
		deadline = time.Now().Add(*timeout)
	}

	var rset unix.FdSet
	for {
		rset.Zero()
		for _, fd := range fds {
			rset.Set(fd)
		}

		var tvp *unix.Timeval
		if timeout != nil {
			remaining := time.Until(deadline)
			if remaining < 0 {
				remaining = 0
			}
			tv := unix.NsecToTimeval(remaining.Nanoseconds())
			tvp = &tv
		}

		if _, err := unix.Select(maxFd+1, &rset, nil, nil, tvp); err != nil {
			if isInterrupted(err) {
				continue
			}
			return nil, err
		}
		break
	}

	readable := make([]bool, len(fds))
	for i, fd := range fds {
		readable[i] = rset.IsSet(fd)
	}
	return readable, nil
}
