// Package status provides a thread-safe status tracker for the
// lock-indication daemon. It is read by HTTP handlers and formatted into the
// MQTT lifecycle payloads.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/lock-indication/internal/indication"
)

// Config contains daemon configuration for display.
type Config struct {
	Broker                 string
	HTTPAddr               string
	IconPin                int
	TickMs                 int64
	SlowThresholdMicrowatt int64
	FastThresholdMicrowatt int64
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Indication    indication.Snapshot
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update sets the controller snapshot. Called from the event loop after every
// processed event.
func (t *Tracker) Update(ind indication.Snapshot) {
	t.mu.Lock()
	t.snap.Indication = ind
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
