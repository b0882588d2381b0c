package fingerprint

// FakeMonitor emits scripted events for tests.
type FakeMonitor struct {
	ch chan Event

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeMonitor creates a FakeMonitor with room for buffered sends.
func NewFakeMonitor() *FakeMonitor {
	return &FakeMonitor{ch: make(chan Event, 16)}
}

// Events returns the event channel.
func (f *FakeMonitor) Events() <-chan Event {
	return f.ch
}

// Emit delivers an arbitrary event.
func (f *FakeMonitor) Emit(ev Event) {
	f.ch <- ev
}

// EmitHelp delivers a help event.
func (f *FakeMonitor) EmitHelp(code int, text string) {
	f.Emit(Event{Kind: EventHelp, Code: code, Text: text})
}

// EmitError delivers an error event.
func (f *FakeMonitor) EmitError(code int, text string) {
	f.Emit(Event{Kind: EventError, Code: code, Text: text})
}

// EmitRunning delivers a running-state change.
func (f *FakeMonitor) EmitRunning(running bool) {
	f.Emit(Event{Kind: EventRunningChanged, Running: running})
}

// Close marks the monitor as closed and closes the channel.
func (f *FakeMonitor) Close() error {
	if !f.Closed {
		f.Closed = true
		close(f.ch)
	}
	return nil
}
