//go:build !linux

package hid

import (
	"github.com/ardnew/gohid/internal/pkg"
)

// Supported reports whether this platform is supported. Only Linux is.
func Supported() bool { return false }

// Enumerate always fails on unsupported platforms.
func Enumerate(vendorID, productID uint16) ([]DeviceInfo, error) {
	return nil, pkg.ErrNotSupported
}

// Device is a no-op placeholder on unsupported platforms.
type Device struct{}

// OpenPath always fails on unsupported platforms.
func OpenPath(path string) (*Device, error) { return nil, pkg.ErrNotSupported }

// OpenFirst always fails on unsupported platforms.
func OpenFirst(vendorID, productID uint16, serial string) (*Device, error) {
	return nil, pkg.ErrNotSupported
}

func (d *Device) Write(data []byte) (int, error)             { return 0, pkg.ErrNotSupported }
func (d *Device) ReadTimeout(buf []byte, ms int) (int, error) { return 0, pkg.ErrNotSupported }
func (d *Device) Read(buf []byte) (int, error)                { return 0, pkg.ErrNotSupported }
func (d *Device) SetNonblocking(nonblocking bool)             {}
func (d *Device) SendFeatureReport(data []byte) (int, error)  { return 0, pkg.ErrNotSupported }
func (d *Device) GetFeatureReport(buf []byte) (int, error)    { return 0, pkg.ErrNotSupported }
func (d *Device) GetInputReport(buf []byte) (int, error)      { return 0, pkg.ErrNotSupported }
func (d *Device) GetReportDescriptor() ([]byte, error)        { return nil, pkg.ErrNotSupported }
func (d *Device) GetDeviceInfo() (DeviceInfo, error)          { return DeviceInfo{}, pkg.ErrNotSupported }
func (d *Device) Manufacturer() (string, error)               { return "", pkg.ErrNotSupported }
func (d *Device) Product() (string, error)                    { return "", pkg.ErrNotSupported }
func (d *Device) SerialNumber() (string, error)                { return "", pkg.ErrNotSupported }
func (d *Device) GetIndexedString(index int) (string, error)   { return "", pkg.ErrNotSupported }
func (d *Device) Close() error                                 { return nil }
func (d *Device) LastError() string                            { return "Success" }

// LastGlobalError always reports success on unsupported platforms.
func LastGlobalError() string { return "Success" }

// RegisterHotplugCallback always fails on unsupported platforms.
func RegisterHotplugCallback(
	vendorID, productID uint16,
	events HotplugEvent,
	flags HotplugFlag,
	cb HotplugCallback,
) (HotplugHandle, error) {
	return 0, pkg.ErrNotSupported
}

// DeregisterHotplugCallback always fails on unsupported platforms.
func DeregisterHotplugCallback(handle HotplugHandle) error {
	return pkg.ErrNotSupported
}
