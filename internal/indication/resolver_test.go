package indication

import (
	"errors"
	"testing"
	"time"
)

func newTestResolver(timer ChargeTimer, showCurrent, debug bool) *Resolver {
	return NewResolver(DefaultMessages(), timer, showCurrent, debug)
}

func TestResolvePrecedence(t *testing.T) {
	msgs := DefaultMessages()
	red := Color{255, 0, 0, 255}
	charging := ChargingState{PluggedIn: true}

	tests := []struct {
		name      string
		in        Inputs
		wantText  string
		wantColor Color
	}{
		{
			name: "locked wins over everything",
			in: Inputs{
				UserUnlocked: false,
				Transient:    Transient{Text: "transient", Color: red},
				Charging:     charging,
				Resting:      "resting",
			},
			wantText:  msgs.StorageLocked,
			wantColor: White,
		},
		{
			name: "transient wins over charging and resting",
			in: Inputs{
				UserUnlocked: true,
				Transient:    Transient{Text: "transient", Color: red},
				Charging:     charging,
				Resting:      "resting",
			},
			wantText:  "transient",
			wantColor: red,
		},
		{
			name: "charging wins over resting",
			in: Inputs{
				UserUnlocked: true,
				Charging:     charging,
				Resting:      "resting",
			},
			wantText:  msgs.Charging,
			wantColor: White,
		},
		{
			name: "resting is the fallback",
			in: Inputs{
				UserUnlocked: true,
				Resting:      "resting",
			},
			wantText:  "resting",
			wantColor: White,
		},
		{
			name:      "nothing to show resolves to empty, not an error",
			in:        Inputs{UserUnlocked: true},
			wantText:  "",
			wantColor: White,
		},
	}

	r := newTestResolver(&testChargeTimer{}, false, false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, col := r.Resolve(tt.in)
			if text != tt.wantText {
				t.Errorf("text: got %q, want %q", text, tt.wantText)
			}
			if col != tt.wantColor {
				t.Errorf("color: got %v, want %v", col, tt.wantColor)
			}
		})
	}
}

// Scenario: userUnlocked=false with a resting message still shows the
// storage-locked message.
func TestResolveLockedIgnoresResting(t *testing.T) {
	r := newTestResolver(&testChargeTimer{}, false, false)
	text, _ := r.Resolve(Inputs{
		UserUnlocked: false,
		Resting:      "Swipe up to unlock",
		Charging:     ChargingState{PluggedIn: true, Speed: SpeedFast},
	})
	if text != DefaultMessages().StorageLocked {
		t.Errorf("got %q, want storage-locked message", text)
	}
}

func TestChargingTemplates(t *testing.T) {
	tests := []struct {
		name      string
		speed     ChargingSpeed
		remaining time.Duration
		timerErr  error
		want      string
	}{
		{"fast with time", SpeedFast, 10 * time.Minute, nil, "Charging rapidly (10 min until full)"},
		{"fast without time", SpeedFast, 0, nil, "Charging rapidly"},
		{"slow with time", SpeedSlow, 90 * time.Minute, nil, "Charging slowly (1 hr 30 min until full)"},
		{"slow without time", SpeedSlow, 0, nil, "Charging slowly"},
		{"normal with time", SpeedNormal, 2 * time.Hour, nil, "Charging (2 hr until full)"},
		{"normal without time", SpeedNormal, 0, nil, "Charging"},
		{"stats failure degrades to no estimate", SpeedFast, 10 * time.Minute, errors.New("stats service gone"), "Charging rapidly"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestResolver(&testChargeTimer{remaining: tt.remaining, err: tt.timerErr}, false, false)
			text, _ := r.Resolve(Inputs{
				UserUnlocked: true,
				Charging:     ChargingState{PluggedIn: true, Speed: tt.speed},
			})
			if text != tt.want {
				t.Errorf("got %q, want %q", text, tt.want)
			}
		})
	}
}

// Scenario: plugged in, fast, 600000ms remaining formats as "10 min".
func TestChargingFastWithTimeEstimate(t *testing.T) {
	r := newTestResolver(&testChargeTimer{remaining: 600000 * time.Millisecond}, false, false)
	text, _ := r.Resolve(Inputs{
		UserUnlocked: true,
		Charging:     ChargingState{PluggedIn: true, Speed: SpeedFast},
	})
	if text != "Charging rapidly (10 min until full)" {
		t.Errorf("got %q", text)
	}
}

func TestChargedShortCircuit(t *testing.T) {
	timer := &testChargeTimer{remaining: 10 * time.Minute}
	r := newTestResolver(timer, false, false)
	text, _ := r.Resolve(Inputs{
		UserUnlocked: true,
		Charging:     ChargingState{PluggedIn: true, Charged: true},
	})
	if text != "Charged" {
		t.Errorf("got %q, want %q", text, "Charged")
	}
}

func TestNilChargeTimer(t *testing.T) {
	r := newTestResolver(nil, false, false)
	text, _ := r.Resolve(Inputs{
		UserUnlocked: true,
		Charging:     ChargingState{PluggedIn: true},
	})
	if text != "Charging" {
		t.Errorf("got %q, want %q", text, "Charging")
	}
}

func TestCurrentSuffix(t *testing.T) {
	cs := ChargingState{
		PluggedIn:        true,
		Speed:            SpeedNormal,
		CurrentMicroamp:  1500000,
		VoltageMicrovolt: 5000000,
	}

	tests := []struct {
		name        string
		showCurrent bool
		current     int
		charged     bool
		remaining   time.Duration
		want        string
	}{
		{"disabled", false, 1500000, false, 0, "Charging"},
		{"enabled", true, 1500000, false, 0, "Charging\n1500mA / 5V"},
		{"enabled but zero current", true, 0, false, 0, "Charging"},
		{"appended after time formatting", true, 1500000, false, 10 * time.Minute, "Charging (10 min until full)\n1500mA / 5V"},
		{"appended in charged branch", true, 1500000, true, 0, "Charged\n1500mA / 5V"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestResolver(&testChargeTimer{remaining: tt.remaining}, tt.showCurrent, false)
			in := cs
			in.CurrentMicroamp = tt.current
			in.Charged = tt.charged
			text, _ := r.Resolve(Inputs{UserUnlocked: true, Charging: in})
			if text != tt.want {
				t.Errorf("got %q, want %q", text, tt.want)
			}
		})
	}
}

func TestDebugWattageSuffix(t *testing.T) {
	r := newTestResolver(&testChargeTimer{}, false, true)
	text, _ := r.Resolve(Inputs{
		UserUnlocked: true,
		Charging:     ChargingState{PluggedIn: true, WattageMicrowatt: 5000000},
	})
	if text != "Charging,  5000 mW" {
		t.Errorf("got %q", text)
	}
}

func TestFormatChargeTime(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "1 min"},
		{time.Minute, "1 min"},
		{61 * time.Second, "2 min"},
		{10 * time.Minute, "10 min"},
		{59*time.Minute + 30*time.Second, "1 hr"},
		{time.Hour, "1 hr"},
		{90 * time.Minute, "1 hr 30 min"},
		{2 * time.Hour, "2 hr"},
		{25 * time.Hour, "25 hr"},
	}
	for _, tt := range tests {
		if got := formatChargeTime(tt.d); got != tt.want {
			t.Errorf("formatChargeTime(%v): got %q, want %q", tt.d, got, tt.want)
		}
	}
}
