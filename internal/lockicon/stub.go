//go:build !linux

package lockicon

import "errors"

// RealFlag is not available on non-Linux platforms.
type RealFlag struct{}

// NewRealFlag returns an error on non-Linux platforms.
func NewRealFlag(pin int) (*RealFlag, error) {
	return nil, errors.New("lockicon: not supported on this platform (requires Linux)")
}

// SetTransientFingerprintError is not implemented on non-Linux platforms.
func (r *RealFlag) SetTransientFingerprintError(on bool) {}

// Close is not implemented on non-Linux platforms.
func (r *RealFlag) Close() error {
	return nil
}
