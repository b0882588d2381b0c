package lockicon

// FakeFlag records LED transitions for test assertions.
type FakeFlag struct {
	// Transitions contains every value passed to
	// SetTransientFingerprintError, in order.
	Transitions []bool

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeFlag creates a FakeFlag.
func NewFakeFlag() *FakeFlag {
	return &FakeFlag{}
}

// SetTransientFingerprintError records the value.
func (f *FakeFlag) SetTransientFingerprintError(on bool) {
	f.Transitions = append(f.Transitions, on)
}

// On reports the current LED state (last transition, or off).
func (f *FakeFlag) On() bool {
	if len(f.Transitions) == 0 {
		return false
	}
	return f.Transitions[len(f.Transitions)-1]
}

// Close marks the flag as closed.
func (f *FakeFlag) Close() error {
	f.Closed = true
	return nil
}

// Reset clears recorded transitions.
func (f *FakeFlag) Reset() {
	f.Transitions = nil
	f.Closed = false
}
