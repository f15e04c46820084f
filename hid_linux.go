//go:build linux

package hid

import (
	"github.com/ardnew/gohid/internal/hidsys"
)

// Supported reports whether this platform is supported.
func Supported() bool { return true }

// Enumerate iterates every hidraw character device on the system,
// filtering by vendor/product identity (0 is a wildcard for either).
func Enumerate(vendorID, productID uint16) ([]DeviceInfo, error) {
	return hidsys.Enumerate(vendorID, productID)
}

// Device is an opened hidraw character device.
type Device struct {
	sys *hidsys.Device
}

// OpenPath opens a hidraw character device by its /dev node path.
func OpenPath(path string) (*Device, error) {
	sys, err := hidsys.OpenPath(path)
	if err != nil {
		return nil, err
	}
	return &Device{sys: sys}, nil
}

// OpenFirst opens the first device matching (vendorID, productID) and,
// if serial is non-empty, whose serial number matches exactly.
func OpenFirst(vendorID, productID uint16, serial string) (*Device, error) {
	sys, err := hidsys.OpenFirst(vendorID, productID, serial)
	if err != nil {
		return nil, err
	}
	return &Device{sys: sys}, nil
}

// Write sends an output report. An empty buffer is rejected.
func (d *Device) Write(data []byte) (int, error) { return d.sys.Write(data) }

// ReadTimeout reads one report, waiting up to timeoutMillis for
// readability; a negative timeout blocks with no poll.
func (d *Device) ReadTimeout(buf []byte, timeoutMillis int) (int, error) {
	return d.sys.ReadTimeout(buf, timeoutMillis)
}

// Read reads one report using the device's current blocking-mode
// setting.
func (d *Device) Read(buf []byte) (int, error) { return d.sys.Read(buf) }

// SetNonblocking switches the device's read mode between blocking and
// non-blocking.
func (d *Device) SetNonblocking(nonblocking bool) { d.sys.SetNonblocking(nonblocking) }

// SendFeatureReport issues HIDIOCSFEATURE; data[0] is the report ID.
func (d *Device) SendFeatureReport(data []byte) (int, error) { return d.sys.SendFeatureReport(data) }

// GetFeatureReport issues HIDIOCGFEATURE; buf[0] must hold the desired
// report ID.
func (d *Device) GetFeatureReport(buf []byte) (int, error) { return d.sys.GetFeatureReport(buf) }

// GetInputReport issues HIDIOCGINPUT (kernel >= 5.11); buf[0] must hold
// the desired report ID.
func (d *Device) GetInputReport(buf []byte) (int, error) { return d.sys.GetInputReport(buf) }

// GetReportDescriptor returns the device's raw HID report descriptor.
func (d *Device) GetReportDescriptor() ([]byte, error) { return d.sys.GetReportDescriptor() }

// GetDeviceInfo lazily builds and caches the device's DeviceInfo.
func (d *Device) GetDeviceInfo() (DeviceInfo, error) { return d.sys.GetDeviceInfo() }

// Manufacturer returns the device's manufacturer string.
func (d *Device) Manufacturer() (string, error) { return d.sys.Manufacturer() }

// Product returns the device's product string.
func (d *Device) Product() (string, error) { return d.sys.Product() }

// SerialNumber returns the device's serial number string.
func (d *Device) SerialNumber() (string, error) { return d.sys.SerialNumber() }

// GetIndexedString always fails: indexed string retrieval is not
// supported by the hidraw back-end.
func (d *Device) GetIndexedString(index int) (string, error) { return d.sys.GetIndexedString(index) }

// Close closes the underlying file descriptor.
func (d *Device) Close() error { return d.sys.Close() }

// LastError returns this device's last-error text, or "Success" when
// none is set.
func (d *Device) LastError() string { return d.sys.LastError() }

// LastGlobalError returns the process-wide last-error text for
// operations not bound to a device, or "Success" when none is set.
func LastGlobalError() string { return hidsys.LastGlobalError() }

// RegisterHotplugCallback arms the hotplug engine on the first
// registration and returns a handle identifying this callback. See
// HotplugFlag for registration flags and HotplugEvent for the event
// bitmask accepted by events.
func RegisterHotplugCallback(
	vendorID, productID uint16,
	events HotplugEvent,
	flags HotplugFlag,
	cb HotplugCallback,
) (HotplugHandle, error) {
	return hidsys.RegisterHotplugCallback(vendorID, productID, events, flags, cb)
}

// DeregisterHotplugCallback unlinks a previously registered callback,
// disarming the hotplug engine if it was the last one.
func DeregisterHotplugCallback(handle HotplugHandle) error {
	return hidsys.DeregisterHotplugCallback(handle)
}
