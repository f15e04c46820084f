//go:build linux

package hidsys

import (
	"os"
	"strconv"
	"sync"
	"syscall"
	"unsafe"

	"github.com/ardnew/gohid/internal/hidtypes"
	"github.com/ardnew/gohid/internal/pkg"
)

// =============================================================================
// Raw Syscall Wrappers
// =============================================================================

func openDevice(path string) (int, error) {
	pathBytes := append([]byte(path), 0)
	fd, _, errno := syscall.Syscall(
		syscall.SYS_OPEN,
		uintptr(unsafe.Pointer(&pathBytes[0])),
		uintptr(syscall.O_RDWR|syscall.O_CLOEXEC),
		0,
	)
	if errno != 0 {
		return -1, errno
	}
	return int(fd), nil
}

func closeDevice(fd int) error {
	_, _, errno := syscall.Syscall(syscall.SYS_CLOSE, uintptr(fd), 0, 0)
	if errno != 0 {
		return errno
	}
	return nil
}

func ioctlRetval(fd int, req uintptr, arg uintptr) (int, error) {
	r, _, errno := syscall.Syscall(syscall.SYS_IOCTL, uintptr(fd), req, arg)
	if errno != 0 {
		return int(r), errno
	}
	return int(r), nil
}

// pollOne polls a single fd for the given event mask with a millisecond
// timeout, returning the revents observed.
func pollOne(fd int, events int16, timeoutMillis int) (revents int16, err error) {
	pfd := struct {
		fd      int32
		events  int16
		revents int16
	}{fd: int32(fd), events: events}

	_, _, errno := syscall.Syscall(
		syscall.SYS_POLL,
		uintptr(unsafe.Pointer(&pfd)),
		1,
		uintptr(timeoutMillis),
	)
	if errno != 0 {
		return 0, errno
	}
	return pfd.revents, nil
}

const (
	pollIn   = 0x001
	pollErr  = 0x008
	pollHup  = 0x010
	pollNval = 0x020
)

// =============================================================================
// Device
// =============================================================================

// Device is an opened hidraw character device. Per-device operations
// are not internally synchronized; callers must not race on the same
// Device, matching the reference library's documented contract.
type Device struct {
	fd int

	blocking bool

	mu           sync.Mutex
	cachedInfo   *hidtypes.DeviceInfo
	lastError    pkg.ErrorRegistry
	disconnected bool
}

// OpenPath opens a hidraw character device by its /dev node path and
// verifies it really is a HID-raw node by issuing GRDESCSIZE.
func OpenPath(path string) (*Device, error) {
	fd, err := openDevice(path)
	if err != nil {
		pkg.LogWarn(pkg.ComponentDevice, "failed to open device", "path", path, "error", err)
		pkg.GlobalError.Setf("Failed to open a device with path '%s': %v", path, err)
		return nil, pkg.ErrIO
	}

	if _, ierr := ioctlRetval(fd, ioctlGRDescSize, uintptr(unsafe.Pointer(new(int32)))); ierr != nil {
		pkg.LogWarn(pkg.ComponentIOCtl, "GRDESCSIZE failed, not a hidraw node", "path", path, "error", ierr)
		pkg.GlobalError.Setf("ioctl(GRDESCSIZE) failed for '%s', not a hidraw device: %v", path, ierr)
		closeDevice(fd)
		return nil, pkg.ErrIO
	}

	pkg.LogDebug(pkg.ComponentDevice, "device opened", "path", path)
	return &Device{fd: fd, blocking: true}, nil
}

// OpenFirst enumerates devices matching (vendorID, productID) and opens
// the first match whose serial number equals serial, when serial is
// non-empty.
func OpenFirst(vendorID, productID uint16, serial string) (*Device, error) {
	devices, err := Enumerate(vendorID, productID)
	if err != nil {
		return nil, err
	}

	for _, d := range devices {
		if d.VendorID != vendorID || d.ProductID != productID {
			continue
		}
		if serial != "" && d.SerialNumber != serial {
			continue
		}
		return OpenPath(d.Path)
	}

	pkg.GlobalError.Set("No HID device matching the requested identity was found.")
	return nil, pkg.ErrNotFound
}

// Write sends an output report. An empty buffer is rejected.
func (d *Device) Write(data []byte) (int, error) {
	if len(data) == 0 {
		d.lastError.Set("Invalid argument: empty write buffer.")
		return 0, pkg.ErrInvalidArgument
	}
	n, _, errno := syscall.Syscall(syscall.SYS_WRITE, uintptr(d.fd), uintptr(unsafe.Pointer(&data[0])), uintptr(len(data)))
	if errno != 0 {
		pkg.LogWarn(pkg.ComponentDevice, "write failed", "fd", d.fd, "error", errno)
		d.lastError.SetError(errno)
		return 0, pkg.ErrIO
	}
	return int(n), nil
}

// ReadTimeout reads one report, waiting up to timeoutMillis for
// readability when timeoutMillis >= 0. A negative timeout blocks with
// no poll. A return of (0, nil) means "timed out" (or EAGAIN on a
// non-blocking fd, swallowed rather than surfaced as an error).
func (d *Device) ReadTimeout(buf []byte, timeoutMillis int) (int, error) {
	if timeoutMillis >= 0 {
		revents, err := pollOne(d.fd, pollIn, timeoutMillis)
		if err != nil {
			pkg.LogWarn(pkg.ComponentDevice, "poll failed", "fd", d.fd, "error", err)
			d.lastError.SetError(err)
			return 0, pkg.ErrIO
		}
		if revents == 0 {
			return 0, nil // timeout
		}
		if revents&(pollErr|pollHup|pollNval) != 0 {
			pkg.LogWarn(pkg.ComponentDevice, "device disconnected", "fd", d.fd, "revents", revents)
			d.mu.Lock()
			d.disconnected = true
			d.mu.Unlock()
			d.lastError.Set("Device disconnected.")
			return 0, pkg.ErrDeviceDisconnected
		}
	}

	if len(buf) == 0 {
		return 0, nil
	}
	n, _, errno := syscall.Syscall(syscall.SYS_READ, uintptr(d.fd), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if errno != 0 {
		if errno == syscall.EAGAIN || errno == syscall.EINPROGRESS {
			return 0, nil
		}
		pkg.LogWarn(pkg.ComponentDevice, "read failed", "fd", d.fd, "error", errno)
		d.lastError.SetError(errno)
		return 0, pkg.ErrIO
	}
	return int(n), nil
}

// Read reads one report using the device's blocking-mode setting: -1ms
// (block) when blocking, 0ms (poll-and-return) when non-blocking.
func (d *Device) Read(buf []byte) (int, error) {
	if d.blocking {
		return d.ReadTimeout(buf, -1)
	}
	return d.ReadTimeout(buf, 0)
}

// SetNonblocking records the device's read mode. The underlying fd
// flags are never changed: flipping O_NONBLOCK on the real fd disturbs
// the kernel's disconnect-detection behavior for hidraw devices, so
// blocking/non-blocking is emulated entirely via the poll timeout
// ReadTimeout chooses.
func (d *Device) SetNonblocking(nonblocking bool) {
	d.blocking = !nonblocking
}

// SendFeatureReport issues HIDIOCSFEATURE. The first byte of data is
// the report ID.
func (d *Device) SendFeatureReport(data []byte) (int, error) {
	if len(data) == 0 {
		d.lastError.Set("Invalid argument: empty feature report buffer.")
		return 0, pkg.ErrInvalidArgument
	}
	n, err := ioctlRetval(d.fd, ioctlSFeature(len(data)), uintptr(unsafe.Pointer(&data[0])))
	if err != nil {
		pkg.LogWarn(pkg.ComponentIOCtl, "SFEATURE failed", "fd", d.fd, "error", err)
		d.lastError.SetError(err)
		return 0, pkg.ErrIO
	}
	return n, nil
}

// GetFeatureReport issues HIDIOCGFEATURE. buf[0] must be set to the
// desired report ID before calling.
func (d *Device) GetFeatureReport(buf []byte) (int, error) {
	if len(buf) == 0 {
		d.lastError.Set("Invalid argument: empty feature report buffer.")
		return 0, pkg.ErrInvalidArgument
	}
	n, err := ioctlRetval(d.fd, ioctlGFeature(len(buf)), uintptr(unsafe.Pointer(&buf[0])))
	if err != nil {
		pkg.LogWarn(pkg.ComponentIOCtl, "GFEATURE failed", "fd", d.fd, "error", err)
		d.lastError.SetError(err)
		return 0, pkg.ErrIO
	}
	return n, nil
}

// GetInputReport issues HIDIOCGINPUT (requires Linux >= 5.11). buf[0]
// must be set to the desired report ID before calling.
func (d *Device) GetInputReport(buf []byte) (int, error) {
	if len(buf) == 0 {
		d.lastError.Set("Invalid argument: empty input report buffer.")
		return 0, pkg.ErrInvalidArgument
	}
	n, err := ioctlRetval(d.fd, ioctlGInput(len(buf)), uintptr(unsafe.Pointer(&buf[0])))
	if err != nil {
		pkg.LogWarn(pkg.ComponentIOCtl, "GINPUT failed", "fd", d.fd, "error", err)
		d.lastError.SetError(err)
		return 0, pkg.ErrIO
	}
	return n, nil
}

// GetReportDescriptor reads the device's raw HID report descriptor via
// HIDIOCGRDESCSIZE followed by HIDIOCGRDESC.
func (d *Device) GetReportDescriptor() ([]byte, error) {
	var size int32
	if _, err := ioctlRetval(d.fd, ioctlGRDescSize, uintptr(unsafe.Pointer(&size))); err != nil {
		pkg.LogWarn(pkg.ComponentIOCtl, "GRDESCSIZE failed", "fd", d.fd, "error", err)
		d.lastError.SetError(err)
		return nil, pkg.ErrIO
	}
	if size < 0 || size > MaxDescriptorSize {
		d.lastError.Setf("Report descriptor size %d exceeds %d bytes.", size, MaxDescriptorSize)
		return nil, pkg.ErrAllocationFailure
	}

	var rd hidrawReportDescriptor
	rd.Size = uint32(size)
	if _, err := ioctlRetval(d.fd, ioctlGRDesc, uintptr(unsafe.Pointer(&rd))); err != nil {
		pkg.LogWarn(pkg.ComponentIOCtl, "GRDESC failed", "fd", d.fd, "error", err)
		d.lastError.SetError(err)
		return nil, pkg.ErrIO
	}
	return rd.Value[:size], nil
}

// GetDeviceInfo lazily builds and caches the device's single-node
// DeviceInfo by re-resolving its topology from /proc/self/fd.
func (d *Device) GetDeviceInfo() (hidtypes.DeviceInfo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cachedInfo != nil {
		return *d.cachedInfo, nil
	}

	info, err := d.resolveDeviceInfo()
	if err != nil {
		return hidtypes.DeviceInfo{}, err
	}
	d.cachedInfo = &info
	return info, nil
}

func (d *Device) resolveDeviceInfo() (hidtypes.DeviceInfo, error) {
	linkPath, err := os.Readlink("/proc/self/fd/" + strconv.Itoa(d.fd))
	if err != nil {
		pkg.LogWarn(pkg.ComponentDevice, "failed to resolve fd path", "fd", d.fd, "error", err)
		d.lastError.SetError(err)
		return hidtypes.DeviceInfo{}, pkg.ErrIO
	}

	name := lastPathComponent(linkPath)
	classPath := SysfsHidrawClassPath + "/" + name

	hidDevDir, ok := hidParent(classPath)
	if !ok {
		pkg.LogWarn(pkg.ComponentDevice, "no hid parent for open device", "path", linkPath)
		d.lastError.Set("Could not resolve sysfs topology for open device.")
		return hidtypes.DeviceInfo{}, pkg.ErrIO
	}

	records, ok := buildDeviceInfo(hidrawNode{classPath: classPath, devPath: linkPath, hidDevDir: hidDevDir})
	if !ok || len(records) == 0 {
		pkg.LogWarn(pkg.ComponentDevice, "failed to build device info", "path", linkPath)
		d.lastError.Set("Could not build device info for open device.")
		return hidtypes.DeviceInfo{}, pkg.ErrIO
	}
	return records[0], nil
}

// Manufacturer returns the cached manufacturer string, fetching device
// info first if not yet cached.
func (d *Device) Manufacturer() (string, error) {
	info, err := d.GetDeviceInfo()
	if err != nil {
		return "", err
	}
	return info.Manufacturer, nil
}

// Product returns the cached product string, fetching device info
// first if not yet cached.
func (d *Device) Product() (string, error) {
	info, err := d.GetDeviceInfo()
	if err != nil {
		return "", err
	}
	return info.Product, nil
}

// SerialNumber returns the cached serial number, fetching device info
// first if not yet cached.
func (d *Device) SerialNumber() (string, error) {
	info, err := d.GetDeviceInfo()
	if err != nil {
		return "", err
	}
	return info.SerialNumber, nil
}

// GetIndexedString is not supported by the hidraw back-end: the kernel
// does not expose the underlying USB GET_DESCRIPTOR(STRING) transfer
// through any hidraw ioctl.
func (d *Device) GetIndexedString(index int) (string, error) {
	d.lastError.Set("Indexed string retrieval is not supported by this back-end.")
	return "", pkg.ErrNotSupported
}

// Close closes the underlying file descriptor and releases cached
// state.
func (d *Device) Close() error {
	d.mu.Lock()
	d.cachedInfo = nil
	d.mu.Unlock()
	return closeDevice(d.fd)
}

// LastError returns this device's last-error text, or "Success" when
// none is set.
func (d *Device) LastError() string {
	return d.lastError.String()
}
