package pkg

import "testing"

func TestErrorKind_String(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindNone, "none"},
		{KindInvalidArgument, "invalid_argument"},
		{KindNotFound, "not_found"},
		{KindIO, "io_error"},
		{KindDeviceDisconnected, "device_disconnected"},
		{KindMalformedDescriptor, "malformed_descriptor"},
		{KindNotSupported, "not_supported"},
		{KindAllocationFailure, "allocation_failure"},
		{ErrorKind(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("ErrorKind.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorKind_Sentinel(t *testing.T) {
	tests := []struct {
		kind    ErrorKind
		wantErr error
	}{
		{KindNone, nil},
		{KindInvalidArgument, ErrInvalidArgument},
		{KindNotFound, ErrNotFound},
		{KindIO, ErrIO},
		{KindDeviceDisconnected, ErrDeviceDisconnected},
		{KindMalformedDescriptor, ErrMalformedDescriptor},
		{KindNotSupported, ErrNotSupported},
		{KindAllocationFailure, ErrAllocationFailure},
	}

	for _, tt := range tests {
		if got := tt.kind.Sentinel(); got != tt.wantErr {
			t.Errorf("ErrorKind(%v).Sentinel() = %v, want %v", tt.kind, got, tt.wantErr)
		}
	}
}
