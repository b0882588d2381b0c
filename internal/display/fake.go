package display

import "github.com/sweeney/lock-indication/internal/indication"

// FakeSink records sink calls for test assertions.
type FakeSink struct {
	// Indications contains every text passed to SwitchIndication, in order.
	Indications []string

	// Colors contains every color passed to SetTextColor, in order.
	Colors []indication.Color

	// Visibility contains every value passed to SetVisibility, in order.
	Visibility []bool

	// SystemEvents contains all published lifecycle events.
	SystemEvents []SystemEvent

	// PublishSystemError, if set, is returned by PublishSystem.
	PublishSystemError error

	// Connected controls IsConnected.
	Connected bool

	// Closed tracks if Close was called.
	Closed bool

	commands chan Command
}

// NewFakeSink creates a FakeSink.
func NewFakeSink() *FakeSink {
	return &FakeSink{commands: make(chan Command, 16)}
}

// SwitchIndication records the text.
func (f *FakeSink) SwitchIndication(text string) {
	f.Indications = append(f.Indications, text)
}

// SetTextColor records the color.
func (f *FakeSink) SetTextColor(c indication.Color) {
	f.Colors = append(f.Colors, c)
}

// SetVisibility records the visibility.
func (f *FakeSink) SetVisibility(visible bool) {
	f.Visibility = append(f.Visibility, visible)
}

// Commands returns the command channel; tests inject with SendCommand.
func (f *FakeSink) Commands() <-chan Command {
	return f.commands
}

// SendCommand injects a remote command.
func (f *FakeSink) SendCommand(cmd Command) {
	f.commands <- cmd
}

// PublishSystem records the lifecycle event.
func (f *FakeSink) PublishSystem(ev SystemEvent) error {
	if f.PublishSystemError != nil {
		return f.PublishSystemError
	}
	f.SystemEvents = append(f.SystemEvents, ev)
	return nil
}

// IsConnected reports the scripted connection state.
func (f *FakeSink) IsConnected() bool {
	return f.Connected
}

// Close marks the sink as closed.
func (f *FakeSink) Close() error {
	f.Closed = true
	return nil
}

// LastIndication returns the most recently switched text, or "".
func (f *FakeSink) LastIndication() string {
	if len(f.Indications) == 0 {
		return ""
	}
	return f.Indications[len(f.Indications)-1]
}

// LastColor returns the most recently set color, or the zero Color.
func (f *FakeSink) LastColor() indication.Color {
	if len(f.Colors) == 0 {
		return indication.Color{}
	}
	return f.Colors[len(f.Colors)-1]
}

// Reset clears recorded calls.
func (f *FakeSink) Reset() {
	f.Indications = nil
	f.Colors = nil
	f.Visibility = nil
	f.SystemEvents = nil
	f.Closed = false
}
