//go:build linux

package hidsys

import (
	"github.com/ardnew/gohid/internal/descriptor"
	"github.com/ardnew/gohid/internal/hidtypes"
)

// buildDeviceInfo runs component D's algorithm for one hidraw node:
// resolve bus identity from uevent, fill bus-specific fields from the
// USB topology (when present), then fan out one record per usage pair
// found in the report descriptor. ok is false when the node should be
// dropped entirely (missing/unparseable uevent, or an unrecognized bus
// type) — a dropped node is not an enumeration error.
func buildDeviceInfo(node hidrawNode) (records []hidtypes.DeviceInfo, ok bool) {
	uevent, err := readUevent(node.classPath)
	if err != nil {
		return nil, false
	}

	info := parseUevent(uevent)
	if !info.ok() {
		return nil, false
	}

	bus, recognized := busTypeFromKernel(info.Bus)
	if !recognized {
		return nil, false
	}

	seed := hidtypes.DeviceInfo{
		Path:            node.devPath,
		VendorID:        info.VID,
		ProductID:       info.PID,
		SerialNumber:    info.Serial,
		ReleaseNumber:   0,
		InterfaceNumber: -1,
		BusType:         bus,
	}

	fillBusFields(&seed, node, bus, info.Name)

	records = []hidtypes.DeviceInfo{seed}

	desc, err := readDescriptor(node.classPath)
	if err != nil {
		// Descriptor unreadable: emit just the seed with usage fields
		// left at their zero value.
		return records, true
	}

	pairs, _ := descriptor.Parse(desc)
	if len(pairs) == 0 {
		return records, true
	}

	records[0].UsagePage = pairs[0].UsagePage
	records[0].Usage = pairs[0].Usage
	for _, p := range pairs[1:] {
		clone := records[0] // deep copy: Go struct assignment copies every field independently
		clone.UsagePage = p.UsagePage
		clone.Usage = p.Usage
		records = append(records, clone)
	}

	return records, true
}

// fillBusFields sets manufacturer/product/release/interface fields
// according to bus type, matching component D step 6.
func fillBusFields(seed *hidtypes.DeviceInfo, node hidrawNode, bus hidtypes.BusType, hidName string) {
	if bus != hidtypes.BusUSB {
		// Bluetooth, I2C, SPI: manufacturer empty, product = HID_NAME.
		seed.Manufacturer = ""
		seed.Product = hidName
		return
	}

	usbInterfaceDir, usbDeviceDir := usbAncestors(node.hidDevDir)
	if usbDeviceDir == "" {
		// Virtual/uhid USB device: no USB ancestor to read attributes from.
		seed.Manufacturer = ""
		seed.Product = hidName
		return
	}

	if m, err := readSysfsString(usbDeviceDir + "/manufacturer"); err == nil {
		seed.Manufacturer = m
	}
	if p, err := readSysfsString(usbDeviceDir + "/product"); err == nil {
		seed.Product = p
	}
	if r, err := readSysfsHex(usbDeviceDir + "/bcdDevice"); err == nil {
		seed.ReleaseNumber = uint16(r)
	}
	if usbInterfaceDir != "" {
		if n, err := readSysfsHex(usbInterfaceDir + "/bInterfaceNumber"); err == nil {
			seed.InterfaceNumber = int(n)
		}
	}
}
