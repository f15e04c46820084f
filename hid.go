// Package hid provides Linux access to Human Interface Device (HID)
// peripherals: enumeration, opening by path or by vendor/product
// identity, report exchange, descriptor retrieval, and hotplug
// (attach/detach) notifications.
package hid

import (
	"github.com/ardnew/gohid/internal/hidtypes"
)

// BusType identifies the transport a HID device is attached through.
type BusType = hidtypes.BusType

// Recognized bus types.
const (
	BusUnknown   = hidtypes.BusUnknown
	BusUSB       = hidtypes.BusUSB
	BusBluetooth = hidtypes.BusBluetooth
	BusI2C       = hidtypes.BusI2C
	BusSPI       = hidtypes.BusSPI
)

// DeviceInfo is one logical enumeration record for a HID node. A node
// whose descriptor declares k usage pairs produces k records that are
// bitwise-equal except for UsagePage/Usage.
type DeviceInfo = hidtypes.DeviceInfo

// HotplugEvent is a bitmask of hotplug event kinds.
type HotplugEvent = hidtypes.HotplugEvent

// Event bits.
const (
	EventArrived = hidtypes.EventArrived
	EventLeft    = hidtypes.EventLeft
)

// HotplugFlag is a bitmask of hotplug registration flags.
type HotplugFlag = hidtypes.HotplugFlag

// Registration flags.
const (
	FlagEnumerate = hidtypes.FlagEnumerate
)

// HotplugHandle identifies a registered hotplug callback.
type HotplugHandle = hidtypes.HotplugHandle

// HotplugCallback is invoked once per matching hotplug event. Returning
// true requests auto-deregistration.
//
// Callbacks for kernel add/remove events run on the hotplug worker with
// the engine's internal lock held, so a callback that calls
// RegisterHotplugCallback or DeregisterHotplugCallback never returns.
// The synthetic ARRIVED events of FlagEnumerate are delivered on the
// registering goroutine without that lock.
type HotplugCallback = hidtypes.HotplugCallback
