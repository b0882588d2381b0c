// Package session provides user-unlock and screen-interactivity state with
// abstraction for testing. The real implementation tracks the logind session
// over the system D-Bus; the fake is set directly by tests.
package session

// EventKind discriminates session transitions the event loop reacts to.
type EventKind int

const (
	// EventScreenOn fires when the screen becomes interactive.
	EventScreenOn EventKind = iota
	// EventScreenOff fires when the screen stops being interactive.
	EventScreenOff
	// EventUnlockChanged fires when the user's storage unlock state flips.
	EventUnlockChanged
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventScreenOn:
		return "SCREEN_ON"
	case EventScreenOff:
		return "SCREEN_OFF"
	case EventUnlockChanged:
		return "UNLOCK_CHANGED"
	default:
		return "UNKNOWN"
	}
}

// Event is a single session transition.
type Event struct {
	Kind EventKind
}

// Source reports current session state and delivers transitions. The state
// queries must be callable from the event loop at any time.
type Source interface {
	// IsUserUnlocked reports whether the user's credential-encrypted
	// storage is unlocked.
	IsUserUnlocked() bool

	// IsInteractive reports whether the screen is on and accepting input.
	IsInteractive() bool

	// Events returns the transition channel. Closed on shutdown.
	Events() <-chan Event

	// Close releases the underlying connection.
	Close() error
}
