package descriptor

import (
	"errors"
	"reflect"
	"testing"
)

// =============================================================================
// Parse Tests
// =============================================================================

func TestParseMouse(t *testing.T) {
	// S1: Usage Page(Generic Desktop), Usage(Mouse), Collection(Application), End Collection.
	desc := []byte{0x05, 0x01, 0x09, 0x02, 0xa1, 0x01, 0xc0}

	pairs, err := Parse(desc)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := []UsagePair{{UsagePage: 0x0001, Usage: 0x0002}}
	if !reflect.DeepEqual(pairs, want) {
		t.Errorf("Parse() = %+v, want %+v", pairs, want)
	}
}

func TestParseNestedCollections(t *testing.T) {
	// S2: two nested usage pairs, Generic Desktop/Keyboard then Consumer/0x01.
	desc := []byte{
		0x05, 0x01, 0x09, 0x06, 0xa1, 0x01,
		0x05, 0x0c, 0x09, 0x01, 0xa1, 0x02,
		0xc0, 0xc0,
	}

	pairs, err := Parse(desc)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := []UsagePair{
		{UsagePage: 0x0001, Usage: 0x0006},
		{UsagePage: 0x000c, Usage: 0x0001},
	}
	if !reflect.DeepEqual(pairs, want) {
		t.Errorf("Parse() = %+v, want %+v", pairs, want)
	}
}

func TestParseEmpty(t *testing.T) {
	// S3: empty descriptor yields zero pairs, no error.
	pairs, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(pairs) != 0 {
		t.Errorf("Parse() = %+v, want empty", pairs)
	}
}

func TestParseTruncatedLongItem(t *testing.T) {
	// S4: descriptor ending in a long-item header (0xf0) with no length byte.
	desc := []byte{0x05, 0x01, 0x09, 0x02, 0xf0}

	_, err := Parse(desc)
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("Parse() error = %v, want %v", err, ErrMalformed)
	}
}

func TestParseNoTopLevelCollection(t *testing.T) {
	// A Usage seen but never consumed by a Collection still yields one pair,
	// matching a device that omits a top-level Application Collection.
	desc := []byte{0x05, 0x01, 0x09, 0x02}

	pairs, err := Parse(desc)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := []UsagePair{{UsagePage: 0x0001, Usage: 0x0002}}
	if !reflect.DeepEqual(pairs, want) {
		t.Errorf("Parse() = %+v, want %+v", pairs, want)
	}
}

func TestParseUsageConsumedByMainItem(t *testing.T) {
	// A Usage followed by Input (not Collection) is consumed without
	// emitting a pair.
	desc := []byte{
		0x05, 0x01, 0x09, 0x30, 0x81, 0x02, // Usage Page, Usage, Input
	}

	pairs, err := Parse(desc)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(pairs) != 0 {
		t.Errorf("Parse() = %+v, want empty (usage consumed by Input)", pairs)
	}
}

func TestParseFourByteData(t *testing.T) {
	// Usage Page with a 4-byte data item (size code 3).
	desc := []byte{
		0x07, 0x34, 0x12, 0x00, 0x00, // Usage Page, 4-byte data = 0x1234
		0x09, 0x02, // Usage (1-byte data) = 2
		0xa1, 0x01, // Collection
		0xc0,
	}

	pairs, err := Parse(desc)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := []UsagePair{{UsagePage: 0x1234, Usage: 0x0002}}
	if !reflect.DeepEqual(pairs, want) {
		t.Errorf("Parse() = %+v, want %+v", pairs, want)
	}
}
