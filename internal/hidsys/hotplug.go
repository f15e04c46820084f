//go:build linux

package hidsys

import (
	"strings"
	"sync"
	"syscall"

	"github.com/ardnew/gohid/internal/hidtypes"
	"github.com/ardnew/gohid/internal/pkg"
)

// =============================================================================
// UEvent Types
// =============================================================================

type ueventAction uint8

const (
	ueventUnknown ueventAction = iota
	ueventAdd
	ueventRemove
)

// monitorEvent is a parsed netlink uevent, filtered down to what the
// hotplug worker needs to act on a hidraw node.
type monitorEvent struct {
	action    ueventAction
	subsystem string
	devpath   string // e.g. /devices/.../hidraw/hidraw3
}

// =============================================================================
// Netlink Monitor
// =============================================================================

// netlinkMonitor watches the kernel uevent broadcast group, generalized
// from a USB-only filter to any subsystem the caller wants.
type netlinkMonitor struct {
	fd  int
	buf [uEventBufferSize]byte
}

func newNetlinkMonitor() (*netlinkMonitor, error) {
	fd, err := syscall.Socket(
		syscall.AF_NETLINK,
		syscall.SOCK_DGRAM|syscall.SOCK_CLOEXEC|syscall.SOCK_NONBLOCK,
		netlinkKObjectUEvent,
	)
	if err != nil {
		return nil, err
	}

	addr := syscall.SockaddrNetlink{
		Family: syscall.AF_NETLINK,
		Groups: 1, // kernel broadcast group
	}
	if err := syscall.Bind(fd, &addr); err != nil {
		syscall.Close(fd)
		return nil, err
	}

	return &netlinkMonitor{fd: fd}, nil
}

func (m *netlinkMonitor) close() error {
	return syscall.Close(m.fd)
}

// receive reads and parses one pending uevent. ok is false when no
// datagram was available (EAGAIN) rather than an error.
func (m *netlinkMonitor) receive() (evt monitorEvent, ok bool, err error) {
	n, err := syscall.Read(m.fd, m.buf[:])
	if err != nil {
		if err == syscall.EAGAIN {
			return monitorEvent{}, false, nil
		}
		pkg.LogWarn(pkg.ComponentHotplug, "netlink read failed", "error", err)
		return monitorEvent{}, false, err
	}
	if n <= 0 {
		return monitorEvent{}, false, nil
	}
	return parseMonitorEvent(m.buf[:n]), true, nil
}

// parseMonitorEvent parses a netlink uevent message's null-separated
// KEY=value lines, extracting ACTION, SUBSYSTEM, and DEVPATH.
func parseMonitorEvent(data []byte) monitorEvent {
	var evt monitorEvent

	for _, line := range strings.Split(string(data), "\x00") {
		if line == "" {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		switch key {
		case "ACTION":
			switch value {
			case "add":
				evt.action = ueventAdd
			case "remove":
				evt.action = ueventRemove
			}
		case "SUBSYSTEM":
			evt.subsystem = value
		case "DEVPATH":
			evt.devpath = value
		}
	}

	return evt
}

// =============================================================================
// Hotplug Context
// =============================================================================

// callbackEntry is one registered hotplug callback.
type callbackEntry struct {
	handle    hidtypes.HotplugHandle
	vendorID  uint16
	productID uint16
	events    hidtypes.HotplugEvent
	fn        hidtypes.HotplugCallback
}

// hotplugContext is the process-wide singleton backing
// RegisterHotplugCallback/DeregisterHotplugCallback. It is Idle when
// callbacks is empty and Armed otherwise.
type hotplugContext struct {
	mu sync.Mutex

	callbacks  []callbackEntry
	nextHandle hidtypes.HotplugHandle

	monitor *netlinkMonitor
	poller  *hotplugPoller
	workerWG sync.WaitGroup
	stop    chan struct{}

	devs []hidtypes.DeviceInfo // authoritative list of connected devices
}

var globalHotplug hotplugContext

// RegisterHotplugCallback validates arguments, arms the monitor on the
// Idle→Armed transition, optionally synthesizes ARRIVED events against
// the current device snapshot, and returns the assigned handle.
func RegisterHotplugCallback(
	vendorID, productID uint16,
	events hidtypes.HotplugEvent,
	flags hidtypes.HotplugFlag,
	fn hidtypes.HotplugCallback,
) (hidtypes.HotplugHandle, error) {
	if events == 0 || events&^(hidtypes.EventArrived|hidtypes.EventLeft) != 0 {
		return 0, pkg.ErrInvalidArgument
	}
	if flags&^hidtypes.FlagEnumerate != 0 {
		return 0, pkg.ErrInvalidArgument
	}
	if fn == nil {
		return 0, pkg.ErrInvalidArgument
	}

	ctx := &globalHotplug
	ctx.mu.Lock()

	wasIdle := len(ctx.callbacks) == 0
	if wasIdle {
		if err := ctx.arm(); err != nil {
			ctx.mu.Unlock()
			return 0, err
		}
	}

	ctx.nextHandle++
	if ctx.nextHandle == 0 {
		ctx.nextHandle = 1
	}
	handle := ctx.nextHandle

	entry := callbackEntry{
		handle:    handle,
		vendorID:  vendorID,
		productID: productID,
		events:    events,
		fn:        fn,
	}
	ctx.callbacks = append(ctx.callbacks, entry)

	var synthetic []hidtypes.DeviceInfo
	if flags&hidtypes.FlagEnumerate != 0 {
		for _, d := range ctx.devs {
			if identityMatches(entry.vendorID, entry.productID, d) {
				synthetic = append(synthetic, d)
			}
		}
	}
	ctx.mu.Unlock()

	// Synthetic ARRIVED delivery happens for this callback alone, outside
	// the lock used for the real dispatch path — it is not a run of the
	// full callback list, so it must not reacquire the context mutex.
	if entry.events&hidtypes.EventArrived != 0 {
		for _, d := range synthetic {
			if fn(handle, d, hidtypes.EventArrived) {
				// Auto-deregistration, as in dispatch; the lock is not
				// held here, so the public path is safe to use.
				DeregisterHotplugCallback(handle)
				break
			}
		}
	}

	return handle, nil
}

// DeregisterHotplugCallback unlinks the callback with the given handle.
// When this empties the callback list, the monitor and worker are torn
// down (Armed→Idle). Returns ErrNotFound if no callback matched.
func DeregisterHotplugCallback(handle hidtypes.HotplugHandle) error {
	ctx := &globalHotplug
	ctx.mu.Lock()

	idx := -1
	for i, c := range ctx.callbacks {
		if c.handle == handle {
			idx = i
			break
		}
	}
	if idx < 0 {
		ctx.mu.Unlock()
		return pkg.ErrNotFound
	}
	ctx.callbacks = append(ctx.callbacks[:idx], ctx.callbacks[idx+1:]...)

	empty := len(ctx.callbacks) == 0
	ctx.mu.Unlock()

	if empty {
		ctx.disarm()
	}
	return nil
}

// arm transitions Idle→Armed: opens the monitor, seeds devs from a full
// enumeration, and starts the worker goroutine. Called with ctx.mu held.
func (ctx *hotplugContext) arm() error {
	monitor, err := newNetlinkMonitor()
	if err != nil {
		pkg.LogWarn(pkg.ComponentHotplug, "failed to open netlink monitor", "error", err)
		return pkg.ErrIO
	}

	poller, err := newHotplugPoller(monitor.fd)
	if err != nil {
		pkg.LogWarn(pkg.ComponentHotplug, "failed to create poller", "error", err)
		monitor.close()
		return pkg.ErrIO
	}

	devs, err := Enumerate(0, 0)
	if err != nil && err != pkg.ErrNotFound {
		pkg.LogWarn(pkg.ComponentHotplug, "initial enumeration failed", "error", err)
		poller.close()
		monitor.close()
		return err
	}

	ctx.monitor = monitor
	ctx.poller = poller
	ctx.devs = devs
	ctx.stop = make(chan struct{})

	ctx.workerWG.Add(1)
	go ctx.workerLoop(ctx.stop)

	pkg.LogDebug(pkg.ComponentHotplug, "armed", "initial_devices", len(devs))
	return nil
}

// disarm signals the worker to exit and tears down the monitor. Called
// without ctx.mu held (the worker itself needs to acquire it).
func (ctx *hotplugContext) disarm() {
	ctx.mu.Lock()
	stop := ctx.stop
	ctx.mu.Unlock()

	close(stop)
	ctx.workerWG.Wait()

	ctx.mu.Lock()
	ctx.poller.close()
	ctx.monitor.close()
	ctx.poller = nil
	ctx.monitor = nil
	ctx.devs = nil
	ctx.mu.Unlock()

	pkg.LogDebug(pkg.ComponentHotplug, "disarmed")
}

// workerLoop is the Armed-state background listener: a 5ms-timeout
// epoll tick gives cooperative cancellation via stop without a separate
// wakeup fd.
func (ctx *hotplugContext) workerLoop(stop <-chan struct{}) {
	defer ctx.workerWG.Done()

	for {
		select {
		case <-stop:
			return
		default:
		}

		ready, err := ctx.poller.wait(hotplugPollTimeoutMillis)
		if err != nil {
			pkg.LogWarn(pkg.ComponentHotplug, "poller wait failed", "error", err)
			continue
		}
		if !ready {
			continue
		}

		ctx.mu.Lock()
		ctx.handleOneEvent()
		ctx.mu.Unlock()
	}
}

// handleOneEvent reads one pending netlink event and, if it names a
// hidraw node, updates devs and dispatches callbacks. Called with
// ctx.mu held.
func (ctx *hotplugContext) handleOneEvent() {
	evt, ok, err := ctx.monitor.receive()
	if err != nil || !ok {
		return
	}
	if evt.subsystem != "hidraw" {
		return
	}

	devName := lastPathComponent(evt.devpath)
	if devName == "" {
		return
	}
	devPath := DevfsHidrawPath + "/" + devName
	classPath := SysfsHidrawClassPath + "/" + devName

	switch evt.action {
	case ueventAdd:
		hidDevDir, ok := hidParent(classPath)
		if !ok {
			pkg.LogDebug(pkg.ComponentHotplug, "add event: no hid parent", "path", devPath)
			return
		}
		records, ok := buildDeviceInfo(hidrawNode{
			classPath: classPath,
			devPath:   devPath,
			hidDevDir: hidDevDir,
		})
		if !ok {
			pkg.LogDebug(pkg.ComponentHotplug, "add event: device info build failed", "path", devPath)
			return
		}
		pkg.LogDebug(pkg.ComponentHotplug, "device arrived", "path", devPath, "records", len(records))
		for _, d := range records {
			ctx.dispatch(d, hidtypes.EventArrived)
		}
		ctx.devs = append(ctx.devs, records...)

	case ueventRemove:
		var kept []hidtypes.DeviceInfo
		for _, d := range ctx.devs {
			if d.Path == devPath {
				pkg.LogDebug(pkg.ComponentHotplug, "device left", "path", devPath)
				ctx.dispatch(d, hidtypes.EventLeft)
				continue
			}
			kept = append(kept, d)
		}
		ctx.devs = kept
	}
}

// dispatch invokes every registered callback whose event mask and
// identity filter match, in registration order, under the context
// mutex. A callback returning true requests auto-deregistration; it is
// spliced out in place rather than recursing into
// DeregisterHotplugCallback, which would deadlock on the held lock.
// Called with ctx.mu held.
func (ctx *hotplugContext) dispatch(info hidtypes.DeviceInfo, event hidtypes.HotplugEvent) {
	kept := ctx.callbacks[:0]
	for _, c := range ctx.callbacks {
		if c.events&event != 0 && identityMatches(c.vendorID, c.productID, info) {
			if c.fn(c.handle, info, event) {
				pkg.LogDebug(pkg.ComponentHotplug, "callback auto-deregistered", "handle", c.handle)
				continue // auto-deregister: drop from kept
			}
		}
		kept = append(kept, c)
	}
	ctx.callbacks = kept
}

func identityMatches(vendorID, productID uint16, d hidtypes.DeviceInfo) bool {
	if vendorID != 0 && d.VendorID != vendorID {
		return false
	}
	if productID != 0 && d.ProductID != productID {
		return false
	}
	return true
}

// lastPathComponent returns the final "/"-separated component of a
// sysfs DEVPATH, e.g. ".../hidraw/hidraw3" → "hidraw3".
func lastPathComponent(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}
