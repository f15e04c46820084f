// Package usbid resolves vendor and product names from the system's
// usb.ids database. cmd/hid-monitor prints these names in place of a
// DeviceInfo's empty Manufacturer/Product fields; the DeviceInfo itself
// is left unchanged.
package usbid

import (
	"bufio"
	"os"
	"strconv"
	"strings"
	"sync"
)

// DefaultPaths lists the standard locations for the USB ID database.
var DefaultPaths = []string{
	"/usr/share/hwdata/usb.ids",
	"/var/lib/usbutils/usb.ids",
	"/usr/share/misc/usb.ids",
}

// Database caches vendor and product names from the USB ID database.
type Database struct {
	vendors  map[uint16]string // VID -> vendor name
	products map[uint32]string // (VID<<16)|PID -> product name
	loaded   bool
	found    bool
	mu       sync.RWMutex
	paths    []string
}

// New creates a USB ID database that searches the default paths.
func New() *Database {
	return &Database{
		vendors:  make(map[uint16]string),
		products: make(map[uint32]string),
		paths:    DefaultPaths,
	}
}

// NewWithPaths creates a USB ID database that searches the given paths.
func NewWithPaths(paths []string) *Database {
	return &Database{
		vendors:  make(map[uint16]string),
		products: make(map[uint32]string),
		paths:    paths,
	}
}

// Load parses the USB ID database file. Idempotent: once a load has been
// attempted, subsequent calls do not search again and return the result
// of the first attempt.
//
// Returns true if a database file was found and parsed.
func (db *Database) Load() bool {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.loaded {
		return db.found
	}

	for _, path := range db.paths {
		file, err := os.Open(path)
		if err != nil {
			continue
		}
		db.parseDatabase(file)
		file.Close()
		db.loaded = true
		db.found = true
		return true
	}

	db.loaded = true // prevent repeated searches for a missing file
	return false
}

func (db *Database) parseDatabase(file *os.File) {
	scanner := bufio.NewScanner(file)
	var currentVID uint16

	for scanner.Scan() {
		line := scanner.Text()

		if len(line) == 0 || line[0] == '#' {
			continue
		}

		if line[0] == '\t' {
			if currentVID == 0 {
				continue
			}
			line = line[1:]
			if len(line) < 6 {
				continue
			}
			pid, err := strconv.ParseUint(line[:4], 16, 16)
			if err != nil {
				continue
			}
			if len(line) > 6 && line[4] == ' ' {
				name := strings.TrimLeft(line[5:], " ")
				key := (uint32(currentVID) << 16) | uint32(pid)
				db.products[key] = name
			}
		} else if len(line) >= 6 {
			vid, err := strconv.ParseUint(line[:4], 16, 16)
			if err != nil {
				currentVID = 0
				continue
			}
			currentVID = uint16(vid)
			if len(line) > 6 && line[4] == ' ' {
				db.vendors[currentVID] = strings.TrimLeft(line[5:], " ")
			}
		} else {
			currentVID = 0
		}
	}
}

// LookupVendor returns the vendor name for vid, or "" if unknown.
func (db *Database) LookupVendor(vid uint16) string {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.vendors[vid]
}

// LookupProduct returns the product name for (vid, pid), or "" if
// unknown.
func (db *Database) LookupProduct(vid, pid uint16) string {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.products[(uint32(vid)<<16)|uint32(pid)]
}

// IsLoaded reports whether a load has been attempted.
func (db *Database) IsLoaded() bool {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.loaded
}

// VendorCount returns the number of vendors in the database.
func (db *Database) VendorCount() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.vendors)
}

// ProductCount returns the number of products in the database.
func (db *Database) ProductCount() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.products)
}
