// Package display publishes the resolved indication to the lock-screen
// renderer over MQTT, with abstraction for testing. It also carries the
// remote command stream (set resting message, raise a transient) and system
// lifecycle events.
package display

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sweeney/lock-indication/internal/indication"
)

// Topic carries the current indication state, retained so a renderer that
// reconnects immediately sees the latest state.
const Topic = "lockscreen/indication"

// TopicSystem carries daemon lifecycle events.
const TopicSystem = "lockscreen/indication/system"

// TopicCommands carries remote commands into the daemon.
const TopicCommands = "lockscreen/indication/set"

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// State is the published indication state.
type State struct {
	Text    string
	Color   indication.Color
	Visible bool
}

// StatePayload is the JSON shape of the indication topic.
type StatePayload struct {
	Indication StateInner `json:"indication"`
}

// StateInner contains the indication details.
type StateInner struct {
	Timestamp string `json:"timestamp"`
	Text      string `json:"text"`
	Color     string `json:"color"`
	Visible   bool   `json:"visible"`
}

// FormatStatePayload creates the JSON payload for an indication state.
func FormatStatePayload(st State, now time.Time) ([]byte, error) {
	payload := StatePayload{
		Indication: StateInner{
			Timestamp: now.UTC().Format(time.RFC3339),
			Text:      st.Text,
			Color:     st.Color.Hex(),
			Visible:   st.Visible,
		},
	}
	return json.Marshal(payload)
}

// SystemEvent represents a daemon lifecycle event.
type SystemEvent struct {
	Timestamp time.Time
	Event     string // "STARTUP", "SHUTDOWN"
	Reason    string // "SIGTERM", "SIGINT" (shutdown only)
	// RawPayload, if set, is published as-is (full status snapshots).
	RawPayload []byte
	Retained   bool
}

// SystemPayload is the JSON shape of simple system events.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event. If
// RawPayload is set, it is returned directly.
func FormatSystemPayload(ev SystemEvent) ([]byte, error) {
	if ev.RawPayload != nil {
		return ev.RawPayload, nil
	}
	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: ev.Timestamp.UTC().Format(time.RFC3339),
			Event:     ev.Event,
			Reason:    ev.Reason,
		},
	}
	return json.Marshal(payload)
}

// Command actions accepted on TopicCommands.
const (
	ActionSetResting    = "set_resting"
	ActionShowTransient = "show_transient"
	ActionHideTransient = "hide_transient"
	ActionSetVisible    = "set_visible"
)

// Command is a remote request to the daemon.
type Command struct {
	Action string `json:"action"`
	Text   string `json:"text,omitempty"`
	// Color is "#rrggbb" or "#rrggbbaa"; empty means the default color.
	Color string `json:"color,omitempty"`
	// HideAfterMs auto-hides a shown transient after this many
	// milliseconds; zero means no auto-hide.
	HideAfterMs int64 `json:"hide_after_ms,omitempty"`
	// Visible is read by set_visible.
	Visible bool `json:"visible,omitempty"`
}

// ParseCommand decodes and validates a command payload.
func ParseCommand(payload []byte) (Command, error) {
	var cmd Command
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return Command{}, fmt.Errorf("decode command: %w", err)
	}
	switch cmd.Action {
	case ActionSetResting, ActionShowTransient, ActionHideTransient, ActionSetVisible:
	default:
		return Command{}, fmt.Errorf("unknown command action %q", cmd.Action)
	}
	if cmd.HideAfterMs < 0 {
		return Command{}, fmt.Errorf("negative hide_after_ms %d", cmd.HideAfterMs)
	}
	return cmd, nil
}
