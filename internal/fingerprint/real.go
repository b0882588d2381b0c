package fingerprint

import (
	"fmt"
	"log"

	"github.com/godbus/dbus/v5"
)

const (
	fprintdService      = "net.reactivated.Fprint"
	fprintdManagerPath  = dbus.ObjectPath("/net/reactivated/Fprint/Manager")
	fprintdManagerIface = "net.reactivated.Fprint.Manager"
	fprintdDevIface     = "net.reactivated.Fprint.Device"
)

// Verify status strings emitted by fprintd.
const (
	verifyStatusMatch   = "verify-match"
	verifyStatusNoMatch = "verify-no-match"
	verifyStatusRetry   = "verify-retry-scan"
	verifyStatusSwipe   = "verify-swipe-too-short"
	verifyStatusRemove  = "verify-remove-finger"
	verifyStatusCenter  = "verify-finger-not-centered"
	verifyStatusUnknown = "verify-unknown-error"
)

// RealMonitor watches fprintd VerifyStatus signals on the system bus and
// translates them into tagged events.
type RealMonitor struct {
	conn   *dbus.Conn
	events chan Event
	done   chan struct{}
}

// NewRealMonitor connects to the system bus, finds the default fingerprint
// device, and subscribes to its verify signals.
func NewRealMonitor() (*RealMonitor, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, fmt.Errorf("connect system bus: %w", err)
	}

	manager := conn.Object(fprintdService, fprintdManagerPath)
	var devicePath dbus.ObjectPath
	if err := manager.Call(fprintdManagerIface+".GetDefaultDevice", 0).Store(&devicePath); err != nil {
		return nil, fmt.Errorf("get default fingerprint device: %w", err)
	}

	if err := conn.AddMatchSignal(
		dbus.WithMatchInterface(fprintdDevIface),
		dbus.WithMatchObjectPath(devicePath),
	); err != nil {
		return nil, fmt.Errorf("subscribe fingerprint signals: %w", err)
	}

	m := &RealMonitor{
		conn:   conn,
		events: make(chan Event, 16),
		done:   make(chan struct{}),
	}

	signals := make(chan *dbus.Signal, 16)
	conn.Signal(signals)
	go m.watch(signals)
	return m, nil
}

// Events returns the event channel.
func (m *RealMonitor) Events() <-chan Event {
	return m.events
}

// Close stops the watcher, which closes the events channel.
func (m *RealMonitor) Close() error {
	close(m.done)
	return nil
}

func (m *RealMonitor) watch(signals <-chan *dbus.Signal) {
	defer close(m.events)
	for {
		select {
		case <-m.done:
			return
		case sig, ok := <-signals:
			if !ok {
				return
			}
			for _, ev := range translate(sig) {
				select {
				case m.events <- ev:
				case <-m.done:
					return
				}
			}
		}
	}
}

// translate maps an fprintd signal onto monitor events. A terminal
// VerifyStatus (done=true) also stops the sensor run.
func translate(sig *dbus.Signal) []Event {
	switch sig.Name {
	case fprintdDevIface + ".VerifyFingerSelected":
		return []Event{{Kind: EventRunningChanged, Running: true}}

	case fprintdDevIface + ".VerifyStatus":
		if len(sig.Body) < 2 {
			log.Printf("fingerprint: malformed VerifyStatus: %v", sig.Body)
			return nil
		}
		status, _ := sig.Body[0].(string)
		done, _ := sig.Body[1].(bool)

		var events []Event
		switch status {
		case verifyStatusMatch:
			events = append(events, Event{Kind: EventAuthenticated})
		case verifyStatusNoMatch:
			events = append(events, Event{Kind: EventAuthFailed})
		case verifyStatusRetry:
			events = append(events, Event{Kind: EventHelp, Code: HelpRetry, Text: "Try again"})
		case verifyStatusSwipe:
			events = append(events, Event{Kind: EventHelp, Code: HelpSwipeTooShort, Text: "Finger moved too fast. Try again"})
		case verifyStatusCenter:
			events = append(events, Event{Kind: EventHelp, Code: HelpOffCenter, Text: "Center your finger on the sensor"})
		case verifyStatusRemove:
			events = append(events, Event{Kind: EventHelp, Code: HelpRemoveFinger, Text: "Remove your finger, then try again"})
		case verifyStatusUnknown:
			events = append(events, Event{Kind: EventError, Code: ErrorHardware, Text: "Fingerprint hardware unavailable"})
		default:
			log.Printf("fingerprint: unknown verify status %q", status)
		}
		if done {
			events = append(events, Event{Kind: EventRunningChanged, Running: false})
		}
		return events
	}
	return nil
}
