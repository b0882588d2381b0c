// Package indication contains the pure decision logic for the lock-screen
// indication: which single message to show given competing sources, and the
// lifecycle of short-lived transient messages.
// This package has NO I/O dependencies (no D-Bus, MQTT, GPIO, or time.Now).
// Timers go through the sched package so tests can fire them manually.
package indication

import (
	"fmt"
	"time"
)

// Color is an RGBA display color.
type Color struct {
	R, G, B, A uint8
}

// White is the default indication color.
var White = Color{255, 255, 255, 255}

// Hex returns the color as "#rrggbb" (or "#rrggbbaa" when not fully opaque).
func (c Color) Hex() string {
	if c.A != 255 {
		return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ChargingSpeed classifies the charge rate against configured thresholds.
type ChargingSpeed int

const (
	SpeedNormal ChargingSpeed = iota
	SpeedSlow
	SpeedFast
)

// String returns a human-readable speed name.
func (s ChargingSpeed) String() string {
	switch s {
	case SpeedSlow:
		return "SLOW"
	case SpeedFast:
		return "FAST"
	default:
		return "NORMAL"
	}
}

// BatteryState is the charge state reported by the power source.
type BatteryState int

const (
	BatteryUnknown BatteryState = iota
	BatteryCharging
	BatteryDischarging
	BatteryNotCharging
	BatteryFull
)

// String returns a human-readable state name.
func (s BatteryState) String() string {
	switch s {
	case BatteryCharging:
		return "CHARGING"
	case BatteryDischarging:
		return "DISCHARGING"
	case BatteryNotCharging:
		return "NOT_CHARGING"
	case BatteryFull:
		return "FULL"
	default:
		return "UNKNOWN"
	}
}

// BatteryStatus is a single power snapshot delivered by the power source.
type BatteryStatus struct {
	// PluggedIn reports whether external power is attached, regardless of
	// whether the battery is actually taking charge.
	PluggedIn bool
	State     BatteryState
	// Instantaneous charging figures, zero when unknown.
	CurrentMicroamp  int
	VoltageMicrovolt int
	WattageMicrowatt int
}

// IsCharged reports whether the battery is full.
func (s BatteryStatus) IsCharged() bool {
	return s.State == BatteryFull
}

// ChargingSpeedFor classifies the reported charge rate. Rates strictly below
// slowMicrowatt are SLOW, strictly above fastMicrowatt are FAST.
func (s BatteryStatus) ChargingSpeedFor(slowMicrowatt, fastMicrowatt int) ChargingSpeed {
	if s.WattageMicrowatt < slowMicrowatt {
		return SpeedSlow
	}
	if s.WattageMicrowatt > fastMicrowatt {
		return SpeedFast
	}
	return SpeedNormal
}

// ChargingState is the tracker's digested view of the battery, read by the
// resolver.
type ChargingState struct {
	// PluggedIn is true only when power is attached AND the battery is
	// charging or full. A plugged-in battery that refuses charge (too hot,
	// broken charger) shows no charging indication.
	PluggedIn        bool
	Charged          bool
	Speed            ChargingSpeed
	CurrentMicroamp  int
	VoltageMicrovolt int
	WattageMicrowatt int
}

// Transient is a short-lived indication. An empty Text means no transient
// message is active.
type Transient struct {
	Text  string
	Color Color
}

// Inputs is an immutable snapshot of everything the resolver needs, assembled
// fresh on every trigger so a resolve never sees a half-updated state.
type Inputs struct {
	Visible      bool
	UserUnlocked bool
	Transient    Transient
	Charging     ChargingState
	Resting      string
}

// Messages holds the display templates. Charging templates with a time slot
// take one %s argument (the formatted remaining time).
type Messages struct {
	StorageLocked    string
	Charged          string
	Charging         string
	ChargingTime     string
	ChargingFast     string
	ChargingTimeFast string
	ChargingSlow     string
	ChargingTimeSlow string
}

// DefaultMessages returns the built-in English templates.
func DefaultMessages() Messages {
	return Messages{
		StorageLocked:    "Unlock device for all features and data",
		Charged:          "Charged",
		Charging:         "Charging",
		ChargingTime:     "Charging (%s until full)",
		ChargingFast:     "Charging rapidly",
		ChargingTimeFast: "Charging rapidly (%s until full)",
		ChargingSlow:     "Charging slowly",
		ChargingTimeSlow: "Charging slowly (%s until full)",
	}
}

// EventCounts tracks how often each kind of indication activity happened
// since startup. Read by the status page.
type EventCounts struct {
	TransientsShown   int
	FingerprintHelp   int
	FingerprintErrors int
	DeferredScreenOn  int
	BouncerMessages   int
}

// Display renders the chosen indication. Failures are handled (logged)
// inside the implementation; callers never see a publish error.
type Display interface {
	SwitchIndication(text string)
	SetTextColor(c Color)
	SetVisibility(visible bool)
}

// SessionState reports the user/session facts the core reads at decision
// time.
type SessionState interface {
	// IsUserUnlocked reports whether the user's credential-encrypted
	// storage has been unlocked since boot.
	IsUserUnlocked() bool
	// IsInteractive reports whether the screen is on and accepting input.
	IsInteractive() bool
}

// Bouncer is the secondary-authentication surface. Messages forwarded to it
// bypass the transient store entirely.
type Bouncer interface {
	IsShowing() bool
	ShowMessage(text string, c Color)
}

// LockIcon receives the transient fingerprint-error flag that drives the
// error LED next to the sensor.
type LockIcon interface {
	SetTransientFingerprintError(on bool)
}

// ChargeTimer estimates the remaining charge time. A zero duration or an
// error both mean "no estimate available".
type ChargeTimer interface {
	ComputeChargeTimeRemaining() (time.Duration, error)
}
