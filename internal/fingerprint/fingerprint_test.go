package fingerprint

import (
	"testing"

	"github.com/godbus/dbus/v5"
)

func verifyStatus(status string, done bool) *dbus.Signal {
	return &dbus.Signal{
		Name: fprintdDevIface + ".VerifyStatus",
		Body: []interface{}{status, done},
	}
}

func TestTranslateVerifyStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		done     bool
		wantKind EventKind
		wantCode int
	}{
		{"match", verifyStatusMatch, true, EventAuthenticated, 0},
		{"no match", verifyStatusNoMatch, true, EventAuthFailed, 0},
		{"retry", verifyStatusRetry, false, EventHelp, HelpRetry},
		{"swipe too short", verifyStatusSwipe, false, EventHelp, HelpSwipeTooShort},
		{"off center", verifyStatusCenter, false, EventHelp, HelpOffCenter},
		{"remove finger", verifyStatusRemove, false, EventHelp, HelpRemoveFinger},
		{"unknown error", verifyStatusUnknown, true, EventError, ErrorHardware},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := translate(verifyStatus(tt.status, tt.done))
			if len(events) == 0 {
				t.Fatal("expected at least one event")
			}
			ev := events[0]
			if ev.Kind != tt.wantKind {
				t.Errorf("Kind: got %v, want %v", ev.Kind, tt.wantKind)
			}
			if ev.Code != tt.wantCode {
				t.Errorf("Code: got %d, want %d", ev.Code, tt.wantCode)
			}
			if tt.wantKind == EventHelp && ev.Text == "" {
				t.Error("help event without text")
			}
		})
	}
}

func TestTranslateDoneStopsRun(t *testing.T) {
	events := translate(verifyStatus(verifyStatusMatch, true))
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	last := events[1]
	if last.Kind != EventRunningChanged || last.Running {
		t.Errorf("expected RunningChanged(false), got %+v", last)
	}
}

func TestTranslateNonTerminalKeepsRunning(t *testing.T) {
	events := translate(verifyStatus(verifyStatusRetry, false))
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
}

func TestTranslateFingerSelectedStartsRun(t *testing.T) {
	events := translate(&dbus.Signal{
		Name: fprintdDevIface + ".VerifyFingerSelected",
		Body: []interface{}{"right-index-finger"},
	})
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Kind != EventRunningChanged || !events[0].Running {
		t.Errorf("expected RunningChanged(true), got %+v", events[0])
	}
}

func TestTranslateIgnoresUnknownSignalsAndStatuses(t *testing.T) {
	if got := translate(&dbus.Signal{Name: "org.example.Other"}); len(got) != 0 {
		t.Errorf("unrelated signal: got %v", got)
	}
	if got := translate(verifyStatus("verify-something-new", false)); len(got) != 0 {
		t.Errorf("unknown status: got %v", got)
	}
	// Malformed body must not panic.
	if got := translate(&dbus.Signal{Name: fprintdDevIface + ".VerifyStatus"}); len(got) != 0 {
		t.Errorf("malformed body: got %v", got)
	}
}

func TestFakeMonitorEmitsEvents(t *testing.T) {
	m := NewFakeMonitor()
	m.EmitHelp(HelpRetry, "Try again")
	m.EmitError(ErrorLockout, "Too many attempts")
	m.EmitRunning(true)

	want := []EventKind{EventHelp, EventError, EventRunningChanged}
	for i, kind := range want {
		ev := <-m.Events()
		if ev.Kind != kind {
			t.Errorf("event %d: got %v, want %v", i, ev.Kind, kind)
		}
	}
}
