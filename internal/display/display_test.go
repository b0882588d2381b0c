package display

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sweeney/lock-indication/internal/indication"
)

func TestFormatStatePayload(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	st := State{
		Text:    "Charging (10 min until full)",
		Color:   indication.White,
		Visible: true,
	}

	payload, err := FormatStatePayload(st, now)
	if err != nil {
		t.Fatalf("FormatStatePayload: %v", err)
	}

	var decoded StatePayload
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Indication.Text != st.Text {
		t.Errorf("text: got %q", decoded.Indication.Text)
	}
	if decoded.Indication.Color != "#ffffff" {
		t.Errorf("color: got %q, want #ffffff", decoded.Indication.Color)
	}
	if !decoded.Indication.Visible {
		t.Error("visible: got false")
	}
	if decoded.Indication.Timestamp != "2026-08-01T12:00:00Z" {
		t.Errorf("timestamp: got %q", decoded.Indication.Timestamp)
	}
}

func TestFormatSystemPayload(t *testing.T) {
	ev := SystemEvent{
		Timestamp: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Event:     "SHUTDOWN",
		Reason:    "SIGTERM",
	}
	payload, err := FormatSystemPayload(ev)
	if err != nil {
		t.Fatalf("FormatSystemPayload: %v", err)
	}

	var decoded SystemPayload
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.System.Event != "SHUTDOWN" || decoded.System.Reason != "SIGTERM" {
		t.Errorf("got %+v", decoded.System)
	}
}

func TestFormatSystemPayloadRaw(t *testing.T) {
	raw := []byte(`{"custom":true}`)
	payload, err := FormatSystemPayload(SystemEvent{RawPayload: raw})
	if err != nil {
		t.Fatalf("FormatSystemPayload: %v", err)
	}
	if string(payload) != string(raw) {
		t.Errorf("got %s, want raw payload unchanged", payload)
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    Command
		wantErr bool
	}{
		{
			name:    "set resting",
			payload: `{"action":"set_resting","text":"Swipe up to unlock"}`,
			want:    Command{Action: ActionSetResting, Text: "Swipe up to unlock"},
		},
		{
			name:    "show transient with color and auto-hide",
			payload: `{"action":"show_transient","text":"Try again","color":"#ff0000","hide_after_ms":5000}`,
			want:    Command{Action: ActionShowTransient, Text: "Try again", Color: "#ff0000", HideAfterMs: 5000},
		},
		{
			name:    "hide transient",
			payload: `{"action":"hide_transient"}`,
			want:    Command{Action: ActionHideTransient},
		},
		{
			name:    "set visible",
			payload: `{"action":"set_visible","visible":true}`,
			want:    Command{Action: ActionSetVisible, Visible: true},
		},
		{
			name:    "unknown action",
			payload: `{"action":"reboot"}`,
			wantErr: true,
		},
		{
			name:    "negative hide delay",
			payload: `{"action":"show_transient","text":"x","hide_after_ms":-1}`,
			wantErr: true,
		},
		{
			name:    "malformed json",
			payload: `{`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCommand([]byte(tt.payload))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCommand: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFakeSinkRecords(t *testing.T) {
	f := NewFakeSink()

	f.SwitchIndication("a")
	f.SetTextColor(indication.White)
	f.SetVisibility(true)
	f.SwitchIndication("b")

	if f.LastIndication() != "b" {
		t.Errorf("LastIndication: got %q", f.LastIndication())
	}
	if len(f.Indications) != 2 {
		t.Errorf("Indications: got %d, want 2", len(f.Indications))
	}
	if f.LastColor() != indication.White {
		t.Errorf("LastColor: got %v", f.LastColor())
	}
	if len(f.Visibility) != 1 || !f.Visibility[0] {
		t.Errorf("Visibility: got %v", f.Visibility)
	}

	if err := f.PublishSystem(SystemEvent{Event: "STARTUP"}); err != nil {
		t.Fatalf("PublishSystem: %v", err)
	}
	if len(f.SystemEvents) != 1 {
		t.Errorf("SystemEvents: got %d, want 1", len(f.SystemEvents))
	}

	f.Reset()
	if f.LastIndication() != "" || len(f.SystemEvents) != 0 {
		t.Error("Reset did not clear recorded calls")
	}
}
