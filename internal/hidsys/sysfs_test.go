//go:build linux

package hidsys

import (
	"testing"

	"github.com/ardnew/gohid/internal/hidtypes"
)

// =============================================================================
// parseHIDID Tests
// =============================================================================

func TestParseHIDID(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		wantBus  hidtypes.BusType
		wantVID  uint16
		wantPID  uint16
		wantOK   bool
	}{
		{"usb mouse", "3:046D:C077", 3, 0x046D, 0xC077, true},
		{"bluetooth", "5:054C:09CC", 5, 0x054C, 0x09CC, true},
		{"missing fields", "3:046D", 0, 0, 0, false},
		{"too many fields", "3:046D:C077:extra", 0, 0, 0, false},
		{"non-hex bus", "ZZ:046D:C077", 0, 0, 0, false},
		{"non-hex vid", "3:ZZZZ:C077", 0, 0, 0, false},
		{"non-hex pid", "3:046D:ZZZZ", 0, 0, 0, false},
		{"empty", "", 0, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus, vid, pid, ok := parseHIDID(tt.value)
			if ok != tt.wantOK {
				t.Fatalf("parseHIDID(%q) ok = %v, want %v", tt.value, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if bus != tt.wantBus || vid != tt.wantVID || pid != tt.wantPID {
				t.Errorf("parseHIDID(%q) = (%v, %#04x, %#04x), want (%v, %#04x, %#04x)",
					tt.value, bus, vid, pid, tt.wantBus, tt.wantVID, tt.wantPID)
			}
		})
	}
}

// =============================================================================
// parseUevent Tests (scenario S5: HID_ID/HID_NAME/HID_UNIQ parsing)
// =============================================================================

func TestParseUevent_Complete(t *testing.T) {
	text := "HID_ID=0003:0000046D:0000C077\nHID_NAME=Logitech USB Optical Mouse\nHID_UNIQ=\nHID_PHYS=usb-0000:00:14.0-1/input0\n"

	info := parseUevent(text)
	if !info.ok() {
		t.Fatalf("parseUevent(%q).ok() = false, want true", text)
	}
	if info.Bus != 3 {
		t.Errorf("Bus = %v, want 3", info.Bus)
	}
	if info.VID != 0x046D || info.PID != 0xC077 {
		t.Errorf("VID/PID = %#04x/%#04x, want 0x046d/0xc077", info.VID, info.PID)
	}
	if info.Name != "Logitech USB Optical Mouse" {
		t.Errorf("Name = %q, want %q", info.Name, "Logitech USB Optical Mouse")
	}
	if info.Serial != "" {
		t.Errorf("Serial = %q, want empty", info.Serial)
	}
}

func TestParseUevent_MissingKeys(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"no keys at all", "SOME_OTHER_KEY=value\n"},
		{"missing HID_NAME", "HID_ID=0003:0000046D:0000C077\nHID_UNIQ=abc\n"},
		{"missing HID_UNIQ", "HID_ID=0003:0000046D:0000C077\nHID_NAME=Mouse\n"},
		{"missing HID_ID", "HID_NAME=Mouse\nHID_UNIQ=abc\n"},
		{"malformed HID_ID", "HID_ID=notvalid\nHID_NAME=Mouse\nHID_UNIQ=abc\n"},
		{"empty text", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if info := parseUevent(tt.text); info.ok() {
				t.Errorf("parseUevent(%q).ok() = true, want false", tt.text)
			}
		})
	}
}

func TestParseUevent_SerialWithValue(t *testing.T) {
	text := "HID_ID=0005:0000054C:000009CC\nHID_NAME=Wireless Controller\nHID_UNIQ=aa:bb:cc:dd:ee:ff\n"

	info := parseUevent(text)
	if !info.ok() {
		t.Fatalf("parseUevent(%q).ok() = false, want true", text)
	}
	if info.Serial != "aa:bb:cc:dd:ee:ff" {
		t.Errorf("Serial = %q, want %q", info.Serial, "aa:bb:cc:dd:ee:ff")
	}
}

func TestParseUevent_LineTooLong(t *testing.T) {
	longValue := make([]byte, MaxUeventLineLen*2)
	for i := range longValue {
		longValue[i] = 'x'
	}
	text := "HID_NAME=" + string(longValue)

	// Must not panic; line is truncated rather than scanned in full.
	info := parseUevent(text)
	if info.gotName && len(info.Name) > MaxUeventLineLen {
		t.Errorf("Name length = %d, want <= %d", len(info.Name), MaxUeventLineLen)
	}
}

// =============================================================================
// busTypeFromKernel Tests
// =============================================================================

func TestBusTypeFromKernel(t *testing.T) {
	tests := []struct {
		raw     hidtypes.BusType
		want    hidtypes.BusType
		wantOK  bool
	}{
		{busUSB, hidtypes.BusUSB, true},
		{busBluetooth, hidtypes.BusBluetooth, true},
		{busI2C, hidtypes.BusI2C, true},
		{busSPI, hidtypes.BusSPI, true},
		{0x99, hidtypes.BusUnknown, false},
	}

	for _, tt := range tests {
		got, ok := busTypeFromKernel(tt.raw)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("busTypeFromKernel(%#x) = (%v, %v), want (%v, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}
