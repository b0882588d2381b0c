package session

// FakeSource is a directly-settable session state for tests.
type FakeSource struct {
	// Unlocked and Interactive are returned by the state queries. Tests
	// set them directly (the core reads them from its own goroutine).
	Unlocked    bool
	Interactive bool

	ch chan Event

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeSource creates a FakeSource with the given initial state.
func NewFakeSource(unlocked, interactive bool) *FakeSource {
	return &FakeSource{
		Unlocked:    unlocked,
		Interactive: interactive,
		ch:          make(chan Event, 16),
	}
}

// IsUserUnlocked returns the scripted unlock state.
func (f *FakeSource) IsUserUnlocked() bool {
	return f.Unlocked
}

// IsInteractive returns the scripted screen state.
func (f *FakeSource) IsInteractive() bool {
	return f.Interactive
}

// Events returns the transition channel.
func (f *FakeSource) Events() <-chan Event {
	return f.ch
}

// TurnScreenOn sets the screen interactive and emits EventScreenOn.
func (f *FakeSource) TurnScreenOn() {
	f.Interactive = true
	f.ch <- Event{Kind: EventScreenOn}
}

// TurnScreenOff clears interactivity and emits EventScreenOff.
func (f *FakeSource) TurnScreenOff() {
	f.Interactive = false
	f.ch <- Event{Kind: EventScreenOff}
}

// SetUnlocked flips the unlock state and emits EventUnlockChanged.
func (f *FakeSource) SetUnlocked(unlocked bool) {
	f.Unlocked = unlocked
	f.ch <- Event{Kind: EventUnlockChanged}
}

// Close marks the source as closed and closes the channel.
func (f *FakeSource) Close() error {
	if !f.Closed {
		f.Closed = true
		close(f.ch)
	}
	return nil
}
