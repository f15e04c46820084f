// Package hidtypes holds the data model shared between the public hid
// package and its platform-specific internal/hidsys implementation,
// kept separate so neither side of that boundary has to import the
// other.
package hidtypes
