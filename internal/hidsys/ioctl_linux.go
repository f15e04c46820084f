//go:build linux

package hidsys

import (
	"unsafe"

	ioctl "github.com/daedaluz/goioctl"
)

// HIDIOC ioctl numbers, computed with goioctl's portable _IOC encoder
// instead of a hand-rolled, architecture-specific bit-packer — the
// encoding is identical across every Go-supported Linux architecture,
// so unlike a usbdevfs-style ioctl table this needs no per-arch file.
var (
	ioctlGRDescSize = uintptr(ioctl.IOR(hidrawIOCType, hidiocGRDescSizeNR, unsafe.Sizeof(int32(0))))
	ioctlGRDesc     = uintptr(ioctl.IOR(hidrawIOCType, hidiocGRDescNR, unsafe.Sizeof(hidrawReportDescriptor{})))
)

// ioctlSFeature returns the ioctl number for sending a feature report of
// the given length (the report ID occupies byte 0).
func ioctlSFeature(length int) uintptr {
	return uintptr(ioctl.IOWR(hidrawIOCType, hidiocSFeatureNR, uintptr(length)))
}

// ioctlGFeature returns the ioctl number for retrieving a feature report
// of the given length.
func ioctlGFeature(length int) uintptr {
	return uintptr(ioctl.IOWR(hidrawIOCType, hidiocGFeatureNR, uintptr(length)))
}

// ioctlGInput returns the ioctl number for retrieving an input report of
// the given length (kernel >= 5.11).
func ioctlGInput(length int) uintptr {
	return uintptr(ioctl.IOWR(hidrawIOCType, hidiocGInputNR, uintptr(length)))
}

// hidrawReportDescriptor mirrors the kernel's struct
// hidraw_report_descriptor from <linux/hidraw.h>.
type hidrawReportDescriptor struct {
	Size  uint32
	Value [MaxDescriptorSize]byte
}
