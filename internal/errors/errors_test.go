package errors_test

import (
	"errors"
	"fmt"
	"os"
	"testing"

	histerrors "github.com/chazuruo/histclean/internal/errors"
)

// TestBaseErrors verifies that all base error types have correct messages.
func TestBaseErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"ErrEncoding", histerrors.ErrEncoding, "invalid encoding"},
		{"ErrConfiguration", histerrors.ErrConfiguration, "invalid configuration"},
		{"ErrIO", histerrors.ErrIO, "I/O error"},
		{"ErrCanceled", histerrors.ErrCanceled, "canceled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestEncodingError verifies EncodingError formatting and unwrapping.
func TestEncodingError(t *testing.T) {
	tests := []struct {
		name string
		err  *histerrors.EncodingError
		want string
	}{
		{
			name: "without cause",
			err:  &histerrors.EncodingError{Line: 2},
			want: "line 2: invalid encoding: not valid UTF-8",
		},
		{
			name: "with cause",
			err:  &histerrors.EncodingError{Line: 7, Err: fmt.Errorf("byte 0x83")},
			want: "line 7: invalid encoding: byte 0x83",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
			if !errors.Is(tt.err, histerrors.ErrEncoding) {
				t.Error("EncodingError does not match ErrEncoding")
			}
		})
	}
}

// TestConfigError verifies ConfigError formatting and unwrapping.
func TestConfigError(t *testing.T) {
	tests := []struct {
		name string
		err  *histerrors.ConfigError
		want string
	}{
		{
			name: "with path",
			err:  &histerrors.ConfigError{Path: "~/.config/histclean/config.toml", Err: fmt.Errorf("bad value")},
			want: "config ~/.config/histclean/config.toml: bad value",
		},
		{
			name: "without path",
			err:  &histerrors.ConfigError{Err: fmt.Errorf("start after end")},
			want: "config: start after end",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("Unwrap reaches sentinel and cause", func(t *testing.T) {
		cause := fmt.Errorf("cause")
		wrapped := &histerrors.ConfigError{Err: cause}
		if !errors.Is(wrapped, histerrors.ErrConfiguration) {
			t.Error("ConfigError does not match ErrConfiguration")
		}
		if !errors.Is(wrapped, cause) {
			t.Error("ConfigError does not match its cause")
		}
	})
}

// TestIOError verifies IOError formatting and unwrapping.
func TestIOError(t *testing.T) {
	err := &histerrors.IOError{Op: "backup", Path: "/tmp/h.bak", Err: os.ErrPermission}

	if got, want := err.Error(), "backup /tmp/h.bak: permission denied"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, histerrors.ErrIO) {
		t.Error("IOError does not match ErrIO")
	}
	if !errors.Is(err, os.ErrPermission) {
		t.Error("IOError does not unwrap to os.ErrPermission")
	}

	var got *histerrors.IOError
	if !errors.As(fmt.Errorf("commit: %w", err), &got) || got.Op != "backup" {
		t.Errorf("errors.As() = %v; want backup IOError", got)
	}
}

// TestIsHelpers verifies the Is<TYPE>() helpers do not cross-match.
func TestIsHelpers(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		isFunc func(error) bool
		want   bool
	}{
		{"IsConfiguration", histerrors.ErrConfiguration, histerrors.IsConfiguration, true},
		{"IsConfiguration on Invalidf", histerrors.Invalidf("--top-n", "must be positive"), histerrors.IsConfiguration, true},
		{"IsConfiguration on IO error", &histerrors.IOError{Op: "read", Path: "/h", Err: os.ErrNotExist}, histerrors.IsConfiguration, false},
		{"IsCanceled", histerrors.ErrCanceled, histerrors.IsCanceled, true},
		{"IsCanceled on wrapped", fmt.Errorf("prompt: %w", histerrors.ErrCanceled), histerrors.IsCanceled, true},
		{"IsCanceled on plain error", fmt.Errorf("boom"), histerrors.IsCanceled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.isFunc(tt.err); got != tt.want {
				t.Errorf("%s() = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
