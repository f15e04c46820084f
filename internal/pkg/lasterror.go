package pkg

import "fmt"

// ErrorRegistry holds the most recent error message for one owner (a
// device, or the process as a whole). It deliberately does not
// synchronize access: callers are expected not to race operations
// against the same device, matching the reference library's explicit
// non-goal of making the last-error text thread-safe.
type ErrorRegistry struct {
	msg string
	set bool
}

// Set records msg as the current last error. An empty msg clears it.
func (r *ErrorRegistry) Set(msg string) {
	r.msg = msg
	r.set = msg != ""
}

// SetError records err's text as the current last error, or clears it
// when err is nil.
func (r *ErrorRegistry) SetError(err error) {
	if err == nil {
		r.Clear()
		return
	}
	r.Set(err.Error())
}

// Setf records a formatted message as the current last error.
func (r *ErrorRegistry) Setf(format string, args ...any) {
	r.Set(fmt.Sprintf(format, args...))
}

// Clear resets the registry to "no error".
func (r *ErrorRegistry) Clear() {
	r.msg = ""
	r.set = false
}

// String returns the last recorded error text, or "Success" if none is
// set, matching hid_error's null-device/no-error contract.
func (r *ErrorRegistry) String() string {
	if !r.set {
		return "Success"
	}
	return r.msg
}

// GlobalError is the process-wide last-error store, used for operations
// not bound to a particular device (e.g. Enumerate's empty-result
// message, or a device open failure before a *Device exists).
var GlobalError ErrorRegistry
