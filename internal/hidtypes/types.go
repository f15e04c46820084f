package hidtypes

// BusType identifies the transport a HID device is attached through.
// Values match the Linux kernel's BUS_* constants (linux/input.h).
type BusType int

// Recognized bus types. Any other kernel bus constant causes the
// owning node to be dropped before a record is built.
const (
	BusUnknown   BusType = 0x00
	BusUSB       BusType = 0x03
	BusBluetooth BusType = 0x05
	BusI2C       BusType = 0x18
	BusSPI       BusType = 0x1c
)

// String returns a human-readable bus name.
func (b BusType) String() string {
	switch b {
	case BusUSB:
		return "usb"
	case BusBluetooth:
		return "bluetooth"
	case BusI2C:
		return "i2c"
	case BusSPI:
		return "spi"
	default:
		return "unknown"
	}
}

// DeviceInfo is one logical enumeration record for a HID node. A node
// that exposes k usage pairs in its report descriptor produces k
// DeviceInfo records that are bitwise-equal except for UsagePage/Usage;
// each record's string fields are independently owned.
type DeviceInfo struct {
	Path            string
	VendorID        uint16
	ProductID       uint16
	ReleaseNumber   uint16 // BCD, USB only; 0 otherwise.
	SerialNumber    string
	Manufacturer    string
	Product         string
	UsagePage       uint16
	Usage           uint16
	InterfaceNumber int // USB only (>= 0); -1 otherwise.
	BusType         BusType
}

// HotplugEvent is a bitmask of hotplug event kinds.
type HotplugEvent int

// Event bits.
const (
	EventArrived HotplugEvent = 1 << iota
	EventLeft
)

// HotplugFlag is a bitmask of hotplug registration flags.
type HotplugFlag int

// Registration flags.
const (
	FlagEnumerate HotplugFlag = 1 << iota
)

// HotplugHandle identifies a registered hotplug callback. Handles are
// assigned from a monotonically increasing counter that resets to 1 on
// overflow; a reset can in principle collide with a still-live handle,
// a documented limitation carried over unchanged from the library this
// package's behavior is modeled on.
type HotplugHandle uint64

// HotplugCallback is invoked once per matching hotplug event. Returning
// true requests auto-deregistration of the callback; it will not be
// invoked again for any subsequent event.
type HotplugCallback func(handle HotplugHandle, info DeviceInfo, event HotplugEvent) bool
