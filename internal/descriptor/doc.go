// Package descriptor decodes HID report descriptors (HID spec 1.11,
// section 6.2.2) into the ordered sequence of Usage Page/Usage pairs
// attached to each Collection.
package descriptor
