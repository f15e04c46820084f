//go:build linux

package hidsys

import (
	"os"
	"path/filepath"
	"strings"
)

// hidrawNode describes one entry under /sys/class/hidraw, resolved to
// its owning "hid" subsystem directory and character-device node path.
type hidrawNode struct {
	classPath string // e.g. /sys/class/hidraw/hidraw0
	devPath   string // e.g. /dev/hidraw0
	hidDevDir string // real path of the owning "hid" subsystem device
}

// listHidrawNodes enumerates every node under SysfsHidrawClassPath,
// resolving the "hid" subsystem parent for each. Nodes whose parent
// cannot be resolved are skipped (component C: "if absent, the node is
// skipped").
func listHidrawNodes() ([]hidrawNode, error) {
	entries, err := os.ReadDir(SysfsHidrawClassPath)
	if err != nil {
		return nil, err
	}

	var nodes []hidrawNode
	for _, e := range entries {
		name := e.Name()
		classPath := SysfsHidrawClassPath + "/" + name

		hidDevDir, ok := hidParent(classPath)
		if !ok {
			continue
		}

		nodes = append(nodes, hidrawNode{
			classPath: classPath,
			devPath:   DevfsHidrawPath + "/" + name,
			hidDevDir: hidDevDir,
		})
	}
	return nodes, nil
}

// hidParent resolves the nearest ancestor of a hidraw class-path entry
// that belongs to the "hid" subsystem: /sys/class/hidraw/hidrawN is a
// symlink into .../<hid-device>/hidraw/hidrawN, so the hid device
// directory is two levels up from the resolved real path.
func hidParent(classPath string) (string, bool) {
	real, err := filepath.EvalSymlinks(classPath)
	if err != nil {
		return "", false
	}
	hidDevDir := filepath.Dir(filepath.Dir(real))

	subsystem, err := os.Readlink(hidDevDir + "/subsystem")
	if err != nil || filepath.Base(subsystem) != "hid" {
		return "", false
	}
	return hidDevDir, true
}

// usbAncestors walks up the device tree from a "hid" subsystem directory
// looking for the nearest "usb"/usb_interface and "usb"/usb_device
// ancestors. Absence of either is not fatal for USB (virtual/uhid
// devices exist); the caller applies component D's defaulting rules.
func usbAncestors(hidDevDir string) (usbInterfaceDir, usbDeviceDir string) {
	dir := filepath.Dir(hidDevDir)
	for dir != "/" && dir != "." && dir != "" {
		subsystem, err := os.Readlink(dir + "/subsystem")
		if err == nil && filepath.Base(subsystem) == "usb" {
			name := filepath.Base(dir)
			if strings.Contains(name, ":") {
				if usbInterfaceDir == "" {
					usbInterfaceDir = dir
				}
			} else if usbDeviceDir == "" {
				usbDeviceDir = dir
				// The usb_device is always the ancestor of its
				// usb_interface children, so once found there is
				// nothing further up the tree this package needs.
				break
			}
		}
		next := filepath.Dir(dir)
		if next == dir {
			break
		}
		dir = next
	}
	return usbInterfaceDir, usbDeviceDir
}
