//go:build linux

package hidsys

// =============================================================================
// System Paths
// =============================================================================

// SysfsHidrawClassPath is the base path for hidraw nodes in sysfs.
const SysfsHidrawClassPath = "/sys/class/hidraw"

// DevfsHidrawPath is the base path for hidraw device nodes.
const DevfsHidrawPath = "/dev"

// =============================================================================
// Descriptor / Uevent Size Limits
// =============================================================================

// MaxDescriptorSize is the largest report descriptor the kernel will
// return via HIDIOCGRDESC.
const MaxDescriptorSize = 4096

// MaxUeventLineLen bounds a single KEY=value line read from a uevent
// attribute; longer lines are truncated.
const MaxUeventLineLen = 1024

// =============================================================================
// Errno Constants
// =============================================================================

// Common errno values returned by hidraw/sysfs operations.
const (
	EPERM   = 1  // Operation not permitted
	ENOENT  = 2  // No such file or directory
	EIO     = 5  // I/O error
	ENXIO   = 6  // No such device or address
	EBADF   = 9  // Bad file descriptor
	EAGAIN  = 11 // Resource temporarily unavailable
	ENOMEM  = 12 // Cannot allocate memory
	EACCES  = 13 // Permission denied
	EFAULT  = 14 // Bad address
	EBUSY   = 16 // Device or resource busy
	ENODEV  = 19 // No such device
	EINVAL  = 22 // Invalid argument
	ENOSPC  = 28 // No space left on device
	EPIPE   = 32 // Broken pipe
	ENODATA = 61 // No data available
	ETIME   = 62 // Timer expired
	ENOSR   = 63 // Out of streams resources
	EPROTO  = 71 // Protocol error
)

// =============================================================================
// HIDRAW ioctl type and numbers
// =============================================================================

// hidrawIOCType is the ioctl type character ('H') shared by every
// HIDIOC* request.
const hidrawIOCType = 'H'

// HIDIOC command numbers, see <linux/hidraw.h>.
const (
	hidiocGRDescSizeNR = 0x01
	hidiocGRDescNR     = 0x02
	hidiocSFeatureNR   = 0x06
	hidiocGFeatureNR   = 0x07
	hidiocGInputNR     = 0x0a
)

// =============================================================================
// Bus Type Constants (see internal/hidtypes for the exported BusType enum)
// =============================================================================

// Linux kernel BUS_* constants (linux/input.h) this package recognizes.
const (
	busUSB       = 0x03
	busBluetooth = 0x05
	busI2C       = 0x18
	busSPI       = 0x1c
)

// =============================================================================
// Netlink Constants
// =============================================================================

// netlinkKObjectUEvent is the netlink protocol for udev events.
const netlinkKObjectUEvent = 15 // NETLINK_KOBJECT_UEVENT

// uEventBufferSize is the buffer size for netlink messages.
const uEventBufferSize = 4096

// =============================================================================
// Polling Constants
// =============================================================================

// Epoll event flags.
const (
	epollIN  = 0x001
	epollOUT = 0x004
	epollERR = 0x008
	epollHUP = 0x010
)

// hotplugPollTimeoutMillis is the worker loop's per-iteration timeout,
// matching the reference implementation's 5 ms select() timeout.
const hotplugPollTimeoutMillis = 5
