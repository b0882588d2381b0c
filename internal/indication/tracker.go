package indication

// ChargingTracker digests raw battery snapshots into the ChargingState the
// resolver reads.
type ChargingTracker struct {
	slowThresholdMicrowatt int
	fastThresholdMicrowatt int
	state                  ChargingState
}

// NewChargingTracker creates a tracker with the configured speed thresholds.
func NewChargingTracker(slowThresholdMicrowatt, fastThresholdMicrowatt int) *ChargingTracker {
	return &ChargingTracker{
		slowThresholdMicrowatt: slowThresholdMicrowatt,
		fastThresholdMicrowatt: fastThresholdMicrowatt,
	}
}

// Update recomputes the charging state from a battery snapshot.
func (t *ChargingTracker) Update(status BatteryStatus) {
	chargingOrFull := status.State == BatteryCharging || status.State == BatteryFull
	t.state = ChargingState{
		PluggedIn:        status.PluggedIn && chargingOrFull,
		Charged:          status.IsCharged(),
		Speed:            status.ChargingSpeedFor(t.slowThresholdMicrowatt, t.fastThresholdMicrowatt),
		CurrentMicroamp:  status.CurrentMicroamp,
		VoltageMicrovolt: status.VoltageMicrovolt,
		WattageMicrowatt: status.WattageMicrowatt,
	}
}

// State returns the current digested charging state.
func (t *ChargingTracker) State() ChargingState {
	return t.state
}
