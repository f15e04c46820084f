// Package hidsys implements the Linux hidraw backend: device open/read/
// write/ioctl, sysfs topology resolution, enumeration, and hotplug
// monitoring via kernel uevent netlink messages. Everything here is unsynchronized
// with the public hid package's semantics by design; hid.go and
// hid_linux.go wrap it behind the stable, documented public API.
package hidsys
