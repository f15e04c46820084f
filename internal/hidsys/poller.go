//go:build linux

package hidsys

import (
	"syscall"
	"unsafe"
)

// epollEvent matches the kernel's struct epoll_event.
type epollEvent struct {
	events uint32
	data   [8]byte // union: ptr, fd, u32, u64
}

// hotplugPoller watches a single netlink monitor fd with a bounded
// per-iteration timeout, giving the hotplug worker loop cooperative
// cancellation without needing a separate wakeup fd: the worst-case
// latency to observe a stop request is one timeout tick.
type hotplugPoller struct {
	epfd int
}

// newHotplugPoller creates an epoll instance watching fd for
// readability.
func newHotplugPoller(fd int) (*hotplugPoller, error) {
	epfd, err := epollCreate1(syscall.EPOLL_CLOEXEC)
	if err != nil {
		return nil, err
	}

	event := epollEvent{events: epollIN}
	*(*int)(unsafe.Pointer(&event.data)) = fd
	if err := epollCtl(epfd, syscall.EPOLL_CTL_ADD, fd, &event); err != nil {
		syscall.Close(epfd)
		return nil, err
	}

	return &hotplugPoller{epfd: epfd}, nil
}

// close releases the epoll instance. It does not close the monitored fd.
func (p *hotplugPoller) close() error {
	return syscall.Close(p.epfd)
}

// wait blocks up to timeoutMillis for the monitored fd to become
// readable, returning true if it did.
func (p *hotplugPoller) wait(timeoutMillis int) (bool, error) {
	var events [1]epollEvent
	n, err := epollWait(p.epfd, events[:], timeoutMillis)
	if err != nil {
		if err == syscall.EINTR {
			return false, nil
		}
		return false, err
	}
	return n > 0, nil
}

// =============================================================================
// Raw epoll syscall wrappers
// =============================================================================

func epollCreate1(flags int) (int, error) {
	fd, _, errno := syscall.Syscall(syscall.SYS_EPOLL_CREATE1, uintptr(flags), 0, 0)
	if errno != 0 {
		return -1, errno
	}
	return int(fd), nil
}

func epollCtl(epfd, op, fd int, event *epollEvent) error {
	var eventPtr uintptr
	if event != nil {
		eventPtr = uintptr(unsafe.Pointer(event))
	}
	_, _, errno := syscall.Syscall6(
		syscall.SYS_EPOLL_CTL,
		uintptr(epfd),
		uintptr(op),
		uintptr(fd),
		eventPtr,
		0, 0,
	)
	if errno != 0 {
		return errno
	}
	return nil
}

func epollWait(epfd int, events []epollEvent, timeoutMillis int) (int, error) {
	n, _, errno := syscall.Syscall6(
		syscall.SYS_EPOLL_WAIT,
		uintptr(epfd),
		uintptr(unsafe.Pointer(&events[0])),
		uintptr(len(events)),
		uintptr(timeoutMillis),
		0, 0,
	)
	if errno != 0 {
		return 0, errno
	}
	return int(n), nil
}
