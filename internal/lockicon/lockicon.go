// Package lockicon drives the error LED next to the fingerprint sensor with
// hardware abstraction. The real implementation uses the Linux GPIO character
// device; the fake allows testing without hardware.
package lockicon

// Flag sets the transient fingerprint-error indicator.
type Flag interface {
	// SetTransientFingerprintError turns the error LED on or off.
	SetTransientFingerprintError(on bool)

	// Close releases GPIO resources.
	Close() error
}

// DefaultPin is the BCM pin number of the error LED.
const DefaultPin = 12

// Noop is a Flag for hardware without an error LED.
type Noop struct{}

// SetTransientFingerprintError does nothing.
func (Noop) SetTransientFingerprintError(on bool) {}

// Close does nothing.
func (Noop) Close() error { return nil }
