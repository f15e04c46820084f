//go:build linux

package hidsys

import (
	"os"
	"strconv"
	"strings"

	"github.com/ardnew/gohid/internal/hidtypes"
	"github.com/ardnew/gohid/internal/pkg"
)

// =============================================================================
// Sysfs Read Helpers
// =============================================================================

// readSysfsString reads a string from a sysfs attribute file, trimming
// surrounding whitespace.
func readSysfsString(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// readSysfsHex reads a hexadecimal value from a sysfs attribute file.
func readSysfsHex(path string) (uint64, error) {
	s, err := readSysfsString(path)
	if err != nil {
		return 0, err
	}
	s = strings.TrimPrefix(s, "0x")
	return strconv.ParseUint(s, 16, 64)
}

// =============================================================================
// Report Descriptor
// =============================================================================

// readDescriptor reads the binary report descriptor for a hidraw node
// given its sysfs directory (the directory containing a "device"
// subdirectory), up to MaxDescriptorSize bytes. No elevated privilege is
// required: the sysfs attribute is world-readable.
func readDescriptor(sysfsPath string) ([]byte, error) {
	f, err := os.Open(sysfsPath + "/device/report_descriptor")
	if err != nil {
		pkg.LogWarn(pkg.ComponentSysfs, "failed to open report descriptor", "path", sysfsPath, "error", err)
		pkg.GlobalError.SetError(err)
		return nil, pkg.ErrIO
	}
	defer f.Close()

	buf := make([]byte, MaxDescriptorSize)
	n, err := f.Read(buf)
	if err != nil && n == 0 {
		pkg.LogWarn(pkg.ComponentSysfs, "failed to read report descriptor", "path", sysfsPath, "error", err)
		pkg.GlobalError.SetError(err)
		return nil, pkg.ErrIO
	}
	return buf[:n], nil
}

// =============================================================================
// Uevent Parsing
// =============================================================================

// ueventInfo is the result of a full uevent parse: HID_ID plus HID_NAME
// and HID_UNIQ.
type ueventInfo struct {
	Bus     hidtypes.BusType
	VID     uint16
	PID     uint16
	Name    string
	Serial  string
	gotID   bool
	gotName bool
	gotUniq bool
}

// ok reports whether all three required keys were found.
func (u ueventInfo) ok() bool {
	return u.gotID && u.gotName && u.gotUniq
}

// readUevent reads the uevent attribute text for a node given its sysfs
// directory (the directory containing a "device" subdirectory).
func readUevent(sysfsPath string) (string, error) {
	text, err := readSysfsString(sysfsPath + "/device/uevent")
	if err != nil {
		pkg.LogWarn(pkg.ComponentSysfs, "failed to read uevent", "path", sysfsPath, "error", err)
	}
	return text, err
}

// parseUevent scans newline-separated KEY=value lines, recognizing
// HID_ID (bus:vid:pid in hex), HID_NAME, and HID_UNIQ. Each line is
// truncated to MaxUeventLineLen bytes before it is split; only the first
// '=' on a line separates key from value.
func parseUevent(text string) ueventInfo {
	var info ueventInfo

	for _, line := range strings.Split(text, "\n") {
		if len(line) > MaxUeventLineLen {
			line = line[:MaxUeventLineLen]
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		switch key {
		case "HID_ID":
			bus, vid, pid, ok := parseHIDID(value)
			if ok {
				info.Bus, info.VID, info.PID = bus, vid, pid
				info.gotID = true
			}
		case "HID_NAME":
			info.Name = value
			info.gotName = true
		case "HID_UNIQ":
			info.Serial = value
			info.gotUniq = true
		}
	}

	if !info.ok() {
		pkg.LogDebug(pkg.ComponentSysfs, "incomplete uevent",
			"got_id", info.gotID, "got_name", info.gotName, "got_uniq", info.gotUniq)
	}

	return info
}

// parseVidPidOnly is a cheaper variant of parseUevent that stops once
// HID_ID has been found, used by the enumerator's pre-filter pass.
func parseVidPidOnly(text string) (vid, pid uint16, ok bool) {
	for _, line := range strings.Split(text, "\n") {
		if len(line) > MaxUeventLineLen {
			line = line[:MaxUeventLineLen]
		}
		key, value, found := strings.Cut(line, "=")
		if !found || key != "HID_ID" {
			continue
		}
		_, vid, pid, ok = parseHIDID(value)
		return vid, pid, ok
	}
	return 0, 0, false
}

// parseHIDID parses a HID_ID value of the form "%x:%hx:%hx" (bus, vid,
// pid), all three hex and all three required.
func parseHIDID(value string) (bus hidtypes.BusType, vid, pid uint16, ok bool) {
	parts := strings.SplitN(value, ":", 3)
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	b, err := strconv.ParseUint(parts[0], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(parts[1], 16, 16)
	if err != nil {
		return 0, 0, 0, false
	}
	p, err := strconv.ParseUint(parts[2], 16, 16)
	if err != nil {
		return 0, 0, 0, false
	}
	return hidtypes.BusType(b), uint16(v), uint16(p), true
}

// busTypeFromKernel maps a raw kernel BUS_* value to the exported
// hidtypes.BusType, reporting ok=false for any value outside the four
// transports this library handles.
func busTypeFromKernel(raw hidtypes.BusType) (hidtypes.BusType, bool) {
	switch int(raw) {
	case busUSB:
		return hidtypes.BusUSB, true
	case busBluetooth:
		return hidtypes.BusBluetooth, true
	case busI2C:
		return hidtypes.BusI2C, true
	case busSPI:
		return hidtypes.BusSPI, true
	default:
		return hidtypes.BusUnknown, false
	}
}
