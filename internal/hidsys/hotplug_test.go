//go:build linux

package hidsys

import (
	"testing"

	"github.com/ardnew/gohid/internal/hidtypes"
)

func TestParseMonitorEvent(t *testing.T) {
	raw := "add@/devices/pci0000:00/usb1/1-1/1-1:1.0/0003:046D:C52B.0001/hidraw/hidraw3\x00ACTION=add\x00DEVPATH=/devices/pci0000:00/usb1/1-1/1-1:1.0/0003:046D:C52B.0001/hidraw/hidraw3\x00SUBSYSTEM=hidraw\x00"

	evt := parseMonitorEvent([]byte(raw))
	if evt.action != ueventAdd {
		t.Fatalf("action = %v, want ueventAdd", evt.action)
	}
	if evt.subsystem != "hidraw" {
		t.Fatalf("subsystem = %q, want hidraw", evt.subsystem)
	}
	if got := lastPathComponent(evt.devpath); got != "hidraw3" {
		t.Fatalf("lastPathComponent = %q, want hidraw3", got)
	}
}

func TestParseMonitorEvent_Remove(t *testing.T) {
	raw := "remove@/devices/.../hidraw/hidraw1\x00ACTION=remove\x00SUBSYSTEM=hidraw\x00DEVPATH=/devices/.../hidraw/hidraw1\x00"
	evt := parseMonitorEvent([]byte(raw))
	if evt.action != ueventRemove {
		t.Fatalf("action = %v, want ueventRemove", evt.action)
	}
}

func TestParseMonitorEvent_OtherSubsystem(t *testing.T) {
	raw := "add@/devices/.../tty/ttyUSB0\x00ACTION=add\x00SUBSYSTEM=tty\x00DEVPATH=/devices/.../tty/ttyUSB0\x00"
	evt := parseMonitorEvent([]byte(raw))
	if evt.subsystem != "tty" {
		t.Fatalf("subsystem = %q, want tty (so the worker drops it)", evt.subsystem)
	}
}

func TestLastPathComponent(t *testing.T) {
	cases := []struct{ in, want string }{
		{"/devices/foo/hidraw/hidraw0", "hidraw0"},
		{"hidraw0", "hidraw0"},
		{"", ""},
		{"/", ""},
	}
	for _, c := range cases {
		if got := lastPathComponent(c.in); got != c.want {
			t.Errorf("lastPathComponent(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestIdentityMatches(t *testing.T) {
	d := hidtypes.DeviceInfo{VendorID: 0x046D, ProductID: 0xC52B}

	cases := []struct {
		name      string
		vid, pid  uint16
		wantMatch bool
	}{
		{"wildcard both", 0, 0, true},
		{"vendor only match", 0x046D, 0, true},
		{"vendor only mismatch", 0x1234, 0, false},
		{"both match", 0x046D, 0xC52B, true},
		{"product mismatches", 0x046D, 0x0001, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := identityMatches(c.vid, c.pid, d); got != c.wantMatch {
				t.Errorf("identityMatches(%#x,%#x) = %v, want %v", c.vid, c.pid, got, c.wantMatch)
			}
		})
	}
}

// TestRegisterHotplugCallback_InvalidArgs exercises validation that does
// not require arming a real netlink monitor.
func TestRegisterHotplugCallback_InvalidArgs(t *testing.T) {
	cases := []struct {
		name   string
		events hidtypes.HotplugEvent
		flags  hidtypes.HotplugFlag
		fn     hidtypes.HotplugCallback
	}{
		{"zero events", 0, 0, func(hidtypes.HotplugHandle, hidtypes.DeviceInfo, hidtypes.HotplugEvent) bool { return false }},
		{"unknown event bit", hidtypes.HotplugEvent(1 << 5), 0, func(hidtypes.HotplugHandle, hidtypes.DeviceInfo, hidtypes.HotplugEvent) bool { return false }},
		{"unknown flag bit", hidtypes.EventArrived, hidtypes.HotplugFlag(1 << 5), func(hidtypes.HotplugHandle, hidtypes.DeviceInfo, hidtypes.HotplugEvent) bool { return false }},
		{"nil callback", hidtypes.EventArrived, 0, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := RegisterHotplugCallback(0, 0, c.events, c.flags, c.fn)
			if err == nil {
				t.Fatalf("expected validation error, got nil")
			}
		})
	}
}

// TestDispatch_AutoDeregister exercises the splice-in-place contract
// (invariant 5: a callback returning true is never invoked again) without any
// real monitor or worker goroutine.
func TestDispatch_AutoDeregister(t *testing.T) {
	ctx := &hotplugContext{}

	var calls int
	ctx.callbacks = []callbackEntry{
		{
			handle: 1,
			events: hidtypes.EventArrived,
			fn: func(hidtypes.HotplugHandle, hidtypes.DeviceInfo, hidtypes.HotplugEvent) bool {
				calls++
				return true // auto-deregister
			},
		},
	}

	info := hidtypes.DeviceInfo{Path: "/dev/hidraw0"}
	ctx.dispatch(info, hidtypes.EventArrived)
	ctx.dispatch(info, hidtypes.EventArrived)

	if calls != 1 {
		t.Fatalf("calls = %d, want 1 (callback must not run after requesting deregistration)", calls)
	}
	if len(ctx.callbacks) != 0 {
		t.Fatalf("callbacks = %d entries, want 0 after auto-deregistration", len(ctx.callbacks))
	}
}

// TestDispatch_RegistrationOrder verifies callbacks fire in insertion
// order and only for events/identities they are registered for.
func TestDispatch_RegistrationOrder(t *testing.T) {
	ctx := &hotplugContext{}

	var order []int
	mk := func(id int, vid uint16) callbackEntry {
		return callbackEntry{
			handle:   hidtypes.HotplugHandle(id),
			vendorID: vid,
			events:   hidtypes.EventArrived,
			fn: func(hidtypes.HotplugHandle, hidtypes.DeviceInfo, hidtypes.HotplugEvent) bool {
				order = append(order, id)
				return false
			},
		}
	}
	ctx.callbacks = []callbackEntry{mk(1, 0), mk(2, 0x1234), mk(3, 0)}

	ctx.dispatch(hidtypes.DeviceInfo{VendorID: 0x0001}, hidtypes.EventArrived)

	want := []int{1, 3} // callback 2 filters on a vendor that doesn't match
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
	if len(ctx.callbacks) != 3 {
		t.Fatalf("callbacks = %d, want 3 (none requested deregistration)", len(ctx.callbacks))
	}
}
