//go:build linux

package lockicon

import (
	"fmt"
	"log"

	"github.com/warthog618/go-gpiocdev"
)

// RealFlag drives an LED on a GPIO output line.
type RealFlag struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
}

// NewRealFlag requests the LED line as an output, initially off.
func NewRealFlag(pin int) (*RealFlag, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	line, err := chip.RequestLine(pin, gpiocdev.AsOutput(0))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request LED pin %d: %w", pin, err)
	}

	return &RealFlag{chip: chip, line: line}, nil
}

// SetTransientFingerprintError sets the LED level. A failed write is logged;
// a stuck LED must not take the indication pipeline down.
func (r *RealFlag) SetTransientFingerprintError(on bool) {
	v := 0
	if on {
		v = 1
	}
	if err := r.line.SetValue(v); err != nil {
		log.Printf("lockicon: set LED: %v", err)
	}
}

// Close turns the LED off and releases GPIO resources.
func (r *RealFlag) Close() error {
	var errs []error

	if r.line != nil {
		if err := r.line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("clear LED: %w", err))
		}
		if err := r.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close line: %w", err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
