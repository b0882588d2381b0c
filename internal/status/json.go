package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event           string       `json:"event,omitempty"`
	Reason          string       `json:"reason,omitempty"`
	Text            string       `json:"text"`
	Color           string       `json:"color"`
	Visible         bool         `json:"visible"`
	Resting         string       `json:"resting"`
	Transient       string       `json:"transient,omitempty"`
	DeferredMessage string       `json:"deferred_message,omitempty"`
	Charging        ChargingJSON `json:"charging"`
	UptimeSeconds   int64        `json:"uptime_seconds"`
	StartTime       string       `json:"start_time"`
	Timestamp       string       `json:"timestamp"`
	MQTT            MQTTStatus   `json:"mqtt"`
	Counts          CountsJSON   `json:"event_counts"`
	Config          ConfigJSON   `json:"config"`
}

// ChargingJSON is the JSON representation of the charging state.
type ChargingJSON struct {
	PluggedIn bool   `json:"plugged_in"`
	Charged   bool   `json:"charged"`
	Speed     string `json:"speed"`
	Wattage   int    `json:"wattage_microwatt"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of event counts.
type CountsJSON struct {
	TransientsShown   int `json:"transients_shown"`
	FingerprintHelp   int `json:"fingerprint_help"`
	FingerprintErrors int `json:"fingerprint_errors"`
	DeferredScreenOn  int `json:"deferred_screen_on"`
	BouncerMessages   int `json:"bouncer_messages"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	Broker        string `json:"broker"`
	HTTPAddr      string `json:"http_addr"`
	IconPin       int    `json:"icon_pin"`
	TickMs        int64  `json:"tick_ms"`
	SlowThreshold int64  `json:"slow_threshold_microwatt"`
	FastThreshold int64  `json:"fast_threshold_microwatt"`
}

func buildInner(snap Snapshot) StatusInner {
	ind := snap.Indication
	return StatusInner{
		Text:            ind.Text,
		Color:           ind.Color.Hex(),
		Visible:         ind.Visible,
		Resting:         ind.Resting,
		Transient:       ind.Transient.Text,
		DeferredMessage: ind.DeferredMessage,
		Charging: ChargingJSON{
			PluggedIn: ind.Charging.PluggedIn,
			Charged:   ind.Charging.Charged,
			Speed:     ind.Charging.Speed.String(),
			Wattage:   ind.Charging.WattageMicrowatt,
		},
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			TransientsShown:   ind.Counts.TransientsShown,
			FingerprintHelp:   ind.Counts.FingerprintHelp,
			FingerprintErrors: ind.Counts.FingerprintErrors,
			DeferredScreenOn:  ind.Counts.DeferredScreenOn,
			BouncerMessages:   ind.Counts.BouncerMessages,
		},
		Config: ConfigJSON{
			Broker:        snap.Config.Broker,
			HTTPAddr:      snap.Config.HTTPAddr,
			IconPin:       snap.Config.IconPin,
			TickMs:        snap.Config.TickMs,
			SlowThreshold: snap.Config.SlowThresholdMicrowatt,
			FastThreshold: snap.Config.FastThresholdMicrowatt,
		},
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason
	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
