//go:build linux

package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	"github.com/ardnew/gohid"
	"github.com/ardnew/gohid/internal/pkg"
	"github.com/ardnew/gohid/internal/prof"
	"github.com/ardnew/gohid/internal/usbid"
)

const componentMonitor pkg.Component = "monitor"

var (
	verbose     = flag.Bool("v", false, "Enable verbose logging")
	jsonOut     = flag.Bool("json", false, "Output logs as JSON")
	vendorID    = flag.String("vid", "", "Filter by Vendor ID (hex)")
	productID   = flag.String("pid", "", "Filter by Product ID (hex)")
	cpuprofile  = flag.String("cpuprofile", "", "Write CPU profile to this path")
	dumpReports = flag.Bool("reports", false, "Continuously read and log input reports from matched devices")
)

var usbIDs *usbid.Database

// =============================================================================
// Output Events
// =============================================================================

type outputEvent interface{ log() }

type deviceArrivedEvent struct {
	info hid.DeviceInfo
}

func (e deviceArrivedEvent) log() {
	attrs := []any{
		"path", e.info.Path,
		"vid", hexID(e.info.VendorID),
		"pid", hexID(e.info.ProductID),
		"bus", e.info.BusType.String(),
		"usage_page", e.info.UsagePage,
		"usage", e.info.Usage,
	}
	manufacturer := e.info.Manufacturer
	if manufacturer == "" {
		manufacturer = usbIDs.LookupVendor(e.info.VendorID)
	}
	product := e.info.Product
	if product == "" {
		product = usbIDs.LookupProduct(e.info.VendorID, e.info.ProductID)
	}
	if manufacturer != "" {
		attrs = append(attrs, "manufacturer", manufacturer)
	}
	if product != "" {
		attrs = append(attrs, "product", product)
	}
	if e.info.SerialNumber != "" {
		attrs = append(attrs, "serial", e.info.SerialNumber)
	}
	pkg.LogInfo(componentMonitor, "device arrived", attrs...)
}

type deviceLeftEvent struct {
	info hid.DeviceInfo
}

func (e deviceLeftEvent) log() {
	pkg.LogInfo(componentMonitor, "device left",
		"path", e.info.Path,
		"vid", hexID(e.info.VendorID),
		"pid", hexID(e.info.ProductID))
}

type hidReportEvent struct {
	path string
	data []byte
}

func (e hidReportEvent) log() {
	pkg.LogInfo(componentMonitor, "input report",
		"path", e.path,
		"length", len(e.data),
		"data", hex.EncodeToString(e.data))
}

type errorEvent struct {
	message string
	err     error
}

func (e errorEvent) log() {
	pkg.LogError(componentMonitor, e.message, "error", e.err)
}

// hexID formats a USB ID (VID/PID) as a 4-digit lowercase hex string.
type hexID uint16

func (h hexID) String() string { return fmt.Sprintf("%04x", uint16(h)) }

// =============================================================================
// Device Registry
// =============================================================================

type deviceRegistry struct {
	devices map[string]hid.DeviceInfo
	mu      sync.RWMutex
}

func newDeviceRegistry() *deviceRegistry {
	return &deviceRegistry{devices: make(map[string]hid.DeviceInfo)}
}

func (r *deviceRegistry) add(info hid.DeviceInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.devices[info.Path] = info
}

func (r *deviceRegistry) remove(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.devices, path)
}

func (r *deviceRegistry) logSummary() {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.devices) == 0 {
		pkg.LogInfo(componentMonitor, "device summary", "count", 0)
		return
	}
	for _, dev := range r.devices {
		pkg.LogInfo(componentMonitor, "device summary",
			"path", dev.Path,
			"vid", hexID(dev.VendorID),
			"pid", hexID(dev.ProductID),
			"bus", dev.BusType.String())
	}
	pkg.LogInfo(componentMonitor, "device summary total", "count", len(r.devices))
}

var (
	registry = newDeviceRegistry()
	outputCh = make(chan outputEvent, 100)
)

func main() {
	flag.Parse()

	if *verbose {
		pkg.SetLogLevel(slog.LevelDebug)
	} else {
		pkg.SetLogLevel(slog.LevelInfo)
	}
	if *jsonOut {
		pkg.SetLogFormat(pkg.LogFormatJSON)
	}

	if *cpuprofile != "" {
		if err := prof.StartCPU(*cpuprofile); err != nil {
			pkg.LogError(componentMonitor, "failed to start CPU profile", "error", err)
			os.Exit(1)
		}
		defer prof.StopCPU()
	}

	usbIDs = usbid.New()
	usbIDs.Load()

	var vid, pid uint16
	if *vendorID != "" {
		v, err := strconv.ParseUint(*vendorID, 16, 16)
		if err != nil {
			pkg.LogError(componentMonitor, "invalid -vid", "error", err)
			os.Exit(1)
		}
		vid = uint16(v)
	}
	if *productID != "" {
		p, err := strconv.ParseUint(*productID, 16, 16)
		if err != nil {
			pkg.LogError(componentMonitor, "invalid -pid", "error", err)
			os.Exit(1)
		}
		pid = uint16(p)
	}

	initial, err := hid.Enumerate(vid, pid)
	if err != nil {
		pkg.LogInfo(componentMonitor, "initial enumeration", "error", err, "message", hid.LastGlobalError())
	}
	for _, d := range initial {
		registry.add(d)
	}
	pkg.LogInfo(componentMonitor, "started",
		"message", "watching for HID hotplug events (Ctrl+T for summary, Ctrl+C to exit)",
		"initial_devices", len(initial))

	handle, err := hid.RegisterHotplugCallback(vid, pid, hid.EventArrived|hid.EventLeft, hid.FlagEnumerate,
		func(_ hid.HotplugHandle, info hid.DeviceInfo, event hid.HotplugEvent) bool {
			switch event {
			case hid.EventArrived:
				registry.add(info)
				outputCh <- deviceArrivedEvent{info: info}
				if *dumpReports {
					go readReports(info.Path)
				}
			case hid.EventLeft:
				registry.remove(info.Path)
				outputCh <- deviceLeftEvent{info: info}
			}
			return false
		})
	if err != nil {
		pkg.LogError(componentMonitor, "failed to register hotplug callback", "error", err)
		os.Exit(1)
	}
	defer hid.DeregisterHotplugCallback(handle)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)

	done := make(chan struct{})
	go outputLogger(done)
	go handleKeyboard(done)

	<-sigCh
	pkg.LogInfo(componentMonitor, "shutting down")
	close(done)
}

func outputLogger(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case event := <-outputCh:
			event.log()
		}
	}
}

func handleKeyboard(done <-chan struct{}) {
	buf := make([]byte, 1)
	for {
		select {
		case <-done:
			return
		default:
		}
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			continue
		}
		switch buf[0] {
		case 0x14: // Ctrl+T
			registry.logSummary()
		case 0x0C: // Ctrl+L
			fmt.Print("\033[H\033[2J")
		}
	}
}

// readReports continuously reads input reports from a device until it
// is closed or disconnected.
func readReports(path string) {
	dev, err := hid.OpenPath(path)
	if err != nil {
		outputCh <- errorEvent{message: "failed to open device for report dump", err: err}
		return
	}
	defer dev.Close()

	buf := make([]byte, 64)
	for {
		n, err := dev.ReadTimeout(buf, 1000)
		if err != nil {
			return
		}
		if n > 0 {
			data := make([]byte, n)
			copy(data, buf[:n])
			outputCh <- hidReportEvent{path: path, data: data}
		}
	}
}
