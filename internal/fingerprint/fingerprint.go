// Package fingerprint provides fingerprint feedback events with abstraction
// for testing. The real implementation watches fprintd VerifyStatus signals
// over the system D-Bus; the fake emits scripted events.
package fingerprint

// EventKind discriminates the fixed set of monitor event variants.
type EventKind int

const (
	// EventHelp is transient guidance: retry, swipe too short, off-center.
	EventHelp EventKind = iota
	// EventError is a terminal verify failure: lockout, hardware trouble.
	EventError
	// EventAuthenticated is a successful match.
	EventAuthenticated
	// EventAuthFailed is a completed attempt that did not match.
	EventAuthFailed
	// EventRunningChanged reports the sensor starting or stopping.
	EventRunningChanged
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventHelp:
		return "HELP"
	case EventError:
		return "ERROR"
	case EventAuthenticated:
		return "AUTHENTICATED"
	case EventAuthFailed:
		return "AUTH_FAILED"
	case EventRunningChanged:
		return "RUNNING_CHANGED"
	default:
		return "UNKNOWN"
	}
}

// Help and error codes. Help codes mirror the sensor's retry hints; error
// codes include the cancellation codes that are never shown.
const (
	HelpRetry         = 1
	HelpSwipeTooShort = 2
	HelpOffCenter     = 3
	HelpRemoveFinger  = 4

	ErrorHardware     = 1
	ErrorTimeout      = 3
	ErrorCanceled     = 5
	ErrorLockout      = 7
	ErrorUserCanceled = 10
)

// Event is a single monitor event. Code and Text are set for Help and Error;
// Running is set for RunningChanged.
type Event struct {
	Kind    EventKind
	Code    int
	Text    string
	Running bool
}

// Monitor delivers fingerprint events.
type Monitor interface {
	// Events returns the event channel. Closed when the monitor shuts down.
	Events() <-chan Event

	// Close releases the underlying connection.
	Close() error
}
