package indication

import "testing"

func TestChargingSpeedClassification(t *testing.T) {
	tests := []struct {
		name    string
		wattage int
		want    ChargingSpeed
	}{
		{"below slow threshold", 999999, SpeedSlow},
		{"at slow threshold", 1000000, SpeedNormal},
		{"between thresholds", 5000000, SpeedNormal},
		{"at fast threshold", 7500000, SpeedNormal},
		{"above fast threshold", 7500001, SpeedFast},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := BatteryStatus{WattageMicrowatt: tt.wattage}
			if got := st.ChargingSpeedFor(1000000, 7500000); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTrackerPluggedInDerivation(t *testing.T) {
	tests := []struct {
		name   string
		status BatteryStatus
		want   bool
	}{
		{"plugged and charging", BatteryStatus{PluggedIn: true, State: BatteryCharging}, true},
		{"plugged and full", BatteryStatus{PluggedIn: true, State: BatteryFull}, true},
		{"plugged but not charging", BatteryStatus{PluggedIn: true, State: BatteryNotCharging}, false},
		{"unplugged", BatteryStatus{PluggedIn: false, State: BatteryDischarging}, false},
		{"charging without plug report", BatteryStatus{PluggedIn: false, State: BatteryCharging}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := NewChargingTracker(1000000, 7500000)
			tracker.Update(tt.status)
			if got := tracker.State().PluggedIn; got != tt.want {
				t.Errorf("PluggedIn: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTrackerCopiesElectricals(t *testing.T) {
	tracker := NewChargingTracker(1000000, 7500000)
	tracker.Update(BatteryStatus{
		PluggedIn:        true,
		State:            BatteryCharging,
		CurrentMicroamp:  1500000,
		VoltageMicrovolt: 5000000,
		WattageMicrowatt: 7500001,
	})

	st := tracker.State()
	if st.CurrentMicroamp != 1500000 {
		t.Errorf("current: got %d", st.CurrentMicroamp)
	}
	if st.VoltageMicrovolt != 5000000 {
		t.Errorf("voltage: got %d", st.VoltageMicrovolt)
	}
	if st.WattageMicrowatt != 7500001 {
		t.Errorf("wattage: got %d", st.WattageMicrowatt)
	}
	if st.Speed != SpeedFast {
		t.Errorf("speed: got %v, want FAST", st.Speed)
	}
	if st.Charged {
		t.Error("charging battery reported as charged")
	}
}

func TestTrackerCharged(t *testing.T) {
	tracker := NewChargingTracker(1000000, 7500000)
	tracker.Update(BatteryStatus{PluggedIn: true, State: BatteryFull})
	st := tracker.State()
	if !st.Charged {
		t.Error("full battery should report charged")
	}
	if !st.PluggedIn {
		t.Error("full plugged battery should report plugged in")
	}
}
