//go:build linux

package hidsys

import (
	"github.com/ardnew/gohid/internal/hidtypes"
	"github.com/ardnew/gohid/internal/pkg"
)

// Enumerate iterates every hidraw character device on the system,
// filters by vendor/product identity (0 is a wildcard for either), and
// concatenates the builder output for each surviving node.
//
// Enumeration never fails because of a single unreadable or
// unrecognized node — those are dropped silently. A node whose report
// descriptor cannot be read is kept with zero usage fields, and the read
// error is recorded as the process-global last error. A completely empty
// result sets the process-global last error to text that differs
// depending on whether a filter was supplied.
func Enumerate(vendorID, productID uint16) ([]hidtypes.DeviceInfo, error) {
	pkg.GlobalError.Clear()

	nodes, err := listHidrawNodes()
	if err != nil {
		pkg.LogWarn(pkg.ComponentEnumerate, "failed to list hidraw nodes", "error", err)
		pkg.GlobalError.SetError(err)
		return nil, pkg.ErrIO
	}

	filtered := vendorID != 0 || productID != 0

	var result []hidtypes.DeviceInfo
	for _, node := range nodes {
		if filtered {
			uevent, err := readUevent(node.classPath)
			if err != nil {
				continue
			}
			vid, pid, ok := parseVidPidOnly(uevent)
			if !ok {
				pkg.LogDebug(pkg.ComponentEnumerate, "skipping node with unparseable HID_ID", "path", node.devPath)
				continue
			}
			if vendorID != 0 && vid != vendorID {
				continue
			}
			if productID != 0 && pid != productID {
				continue
			}
		}

		records, ok := buildDeviceInfo(node)
		if !ok {
			pkg.LogDebug(pkg.ComponentEnumerate, "skipping node", "path", node.devPath)
			continue
		}
		result = append(result, records...)
	}

	if len(result) == 0 {
		if filtered {
			pkg.LogWarn(pkg.ComponentEnumerate, "no matching HID devices found", "vid", vendorID, "pid", productID)
			pkg.GlobalError.Set("No HID devices with requested VID/PID found in the system.")
		} else {
			pkg.LogWarn(pkg.ComponentEnumerate, "no HID devices found")
			pkg.GlobalError.Set("No HID devices found in the system.")
		}
		return nil, pkg.ErrNotFound
	}

	pkg.LogDebug(pkg.ComponentEnumerate, "enumeration complete", "count", len(result))
	return result, nil
}

// LastGlobalError returns the process-wide last-error text, or
// "Success" when none is set.
func LastGlobalError() string {
	return pkg.GlobalError.String()
}
