package power

import (
	"time"

	"github.com/sweeney/lock-indication/internal/indication"
)

// FakeSource delivers scripted battery snapshots for tests.
type FakeSource struct {
	ch chan indication.BatteryStatus

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeSource creates a FakeSource with room for buffered sends.
func NewFakeSource() *FakeSource {
	return &FakeSource{ch: make(chan indication.BatteryStatus, 16)}
}

// Updates returns the snapshot channel.
func (f *FakeSource) Updates() <-chan indication.BatteryStatus {
	return f.ch
}

// Send delivers a snapshot to the consumer.
func (f *FakeSource) Send(status indication.BatteryStatus) {
	f.ch <- status
}

// Close marks the source as closed and closes the channel.
func (f *FakeSource) Close() error {
	if !f.Closed {
		f.Closed = true
		close(f.ch)
	}
	return nil
}

// FakeChargeTimer is a scripted remaining-charge-time collaborator.
type FakeChargeTimer struct {
	// Remaining is returned by ComputeChargeTimeRemaining.
	Remaining time.Duration

	// Err, if set, is returned instead.
	Err error

	// Calls counts invocations.
	Calls int
}

// ComputeChargeTimeRemaining returns the scripted value.
func (f *FakeChargeTimer) ComputeChargeTimeRemaining() (time.Duration, error) {
	f.Calls++
	if f.Err != nil {
		return 0, f.Err
	}
	return f.Remaining, nil
}
