package descriptor

import "errors"

// MaxSize is the largest report descriptor this package will walk.
// Matches the HIDIOCGRDESC fixed buffer size.
const MaxSize = 4096

// ErrMalformed is returned when a long item's length byte falls outside
// the descriptor bounds.
var ErrMalformed = errors.New("descriptor: truncated long item")

// Main/global/local item command bytes, top six bits (key & 0xfc).
const (
	itemUsagePage     = 0x04
	itemUsage         = 0x08
	itemCollection    = 0xa0
	itemInput         = 0x80
	itemOutput        = 0x90
	itemFeature       = 0xb0
	itemEndCollection = 0xc0
)

// UsagePair is one (Usage Page, Usage) pair attached to a Collection.
type UsagePair struct {
	UsagePage uint16
	Usage     uint16
}

// itemSize returns the data length and header length of the item at pos,
// or ok=false if a long item's length byte is out of bounds.
func itemSize(desc []byte, pos int) (dataLen, keySize int, ok bool) {
	key := desc[pos]
	if key&0xf0 == 0xf0 {
		if pos+1 >= len(desc) {
			return 0, 0, false
		}
		return int(desc[pos+1]), 3, true
	}
	switch key & 0x3 {
	case 0:
		return 0, 1, true
	case 1:
		return 1, 1, true
	case 2:
		return 2, 1, true
	default: // 3
		return 4, 1, true
	}
}

// readBytes decodes a little-endian value of n bytes (0, 1, 2, or 4)
// starting immediately after the one-byte short-item key at pos. Returns
// 0 if fewer than n bytes remain, mirroring the reference decoder's
// "don't read past end" rule.
func readBytes(desc []byte, pos, n int) uint32 {
	if n == 0 {
		return 0
	}
	if pos+n >= len(desc) {
		return 0
	}
	switch n {
	case 1:
		return uint32(desc[pos+1])
	case 2:
		return uint32(desc[pos+2])<<8 | uint32(desc[pos+1])
	case 4:
		return uint32(desc[pos+4])<<24 | uint32(desc[pos+3])<<16 | uint32(desc[pos+2])<<8 | uint32(desc[pos+1])
	default:
		return 0
	}
}

// Parse walks a raw HID report descriptor and returns every (Usage Page,
// Usage) pair in descriptor order. A Usage is consumed by the next Main
// item (Input, Output, Feature, Collection, or End Collection); only
// Collection items emit a pair, and only when a Usage was seen since the
// last Main item.
//
// If the descriptor ends with an unconsumed Usage and no pair has been
// emitted yet, that Usage is emitted once against the last-seen Usage
// Page — this matches a device whose descriptor omits a top-level
// Application Collection.
func Parse(desc []byte) ([]UsagePair, error) {
	var pairs []UsagePair
	var page, usage uint16
	var usageSeen bool

	pos := 0
	for pos < len(desc) {
		key := desc[pos]
		dataLen, keySize, ok := itemSize(desc, pos)
		if !ok {
			return pairs, ErrMalformed
		}

		switch key & 0xfc {
		case itemUsagePage:
			page = uint16(readBytes(desc, pos, dataLen))
		case itemUsage:
			usage = uint16(readBytes(desc, pos, dataLen))
			usageSeen = true
		case itemCollection:
			if usageSeen {
				pairs = append(pairs, UsagePair{UsagePage: page, Usage: usage})
				usageSeen = false
			}
		case itemInput, itemOutput, itemFeature, itemEndCollection:
			usageSeen = false
		}

		pos += dataLen + keySize
	}

	if usageSeen && len(pairs) == 0 {
		pairs = append(pairs, UsagePair{UsagePage: page, Usage: usage})
	}

	return pairs, nil
}
