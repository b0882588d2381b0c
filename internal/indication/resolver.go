package indication

import (
	"fmt"
	"time"
)

// Resolver computes the single text+color to display from an Inputs snapshot.
// It holds only read-side collaborators and configuration; all mutable state
// lives in the tracker, store, and dispatcher.
type Resolver struct {
	messages    Messages
	chargeTimer ChargeTimer

	// showChargingCurrent appends an instantaneous current/voltage line to
	// the charging indication.
	showChargingCurrent bool
	// debugChargingSpeed appends the reported wattage, for bring-up.
	debugChargingSpeed bool
}

// NewResolver creates a Resolver. chargeTimer may fail; failures degrade to
// "no time estimate" and are never surfaced.
func NewResolver(messages Messages, chargeTimer ChargeTimer, showChargingCurrent, debugChargingSpeed bool) *Resolver {
	return &Resolver{
		messages:            messages,
		chargeTimer:         chargeTimer,
		showChargingCurrent: showChargingCurrent,
		debugChargingSpeed:  debugChargingSpeed,
	}
}

// Resolve walks the precedence-ordered list of what should be shown based on
// user or device state. First match wins.
func (r *Resolver) Resolve(in Inputs) (string, Color) {
	if !in.UserUnlocked {
		return r.messages.StorageLocked, White
	}
	if in.Transient.Text != "" {
		return in.Transient.Text, in.Transient.Color
	}
	if in.Charging.PluggedIn {
		text := r.chargingIndication(in.Charging)
		if r.debugChargingSpeed {
			text += fmt.Sprintf(",  %d mW", in.Charging.WattageMicrowatt/1000)
		}
		return text, White
	}
	return in.Resting, White
}

// chargingIndication builds the charging line: template keyed on
// (speed, time-estimate availability), then the optional current/voltage
// suffix. The suffix is concatenated after time formatting, never substituted
// into the template.
func (r *Resolver) chargingIndication(cs ChargingState) string {
	if cs.Charged {
		return r.messages.Charged + r.currentSuffix(cs)
	}

	remaining := time.Duration(0)
	if r.chargeTimer != nil {
		// Fails soft: an unavailable estimate is not an error.
		if d, err := r.chargeTimer.ComputeChargeTimeRemaining(); err == nil {
			remaining = d
		}
	}
	hasTime := remaining > 0

	var template string
	switch cs.Speed {
	case SpeedFast:
		if hasTime {
			template = r.messages.ChargingTimeFast
		} else {
			template = r.messages.ChargingFast
		}
	case SpeedSlow:
		if hasTime {
			template = r.messages.ChargingTimeSlow
		} else {
			template = r.messages.ChargingSlow
		}
	default:
		if hasTime {
			template = r.messages.ChargingTime
		} else {
			template = r.messages.Charging
		}
	}

	text := template
	if hasTime {
		text = fmt.Sprintf(template, formatChargeTime(remaining))
	}
	return text + r.currentSuffix(cs)
}

// currentSuffix returns the "\n500mA / 5V" line when the preference is on and
// a nonzero current is reported, empty otherwise.
func (r *Resolver) currentSuffix(cs ChargingState) string {
	if !r.showChargingCurrent || cs.CurrentMicroamp == 0 {
		return ""
	}
	return fmt.Sprintf("\n%dmA / %dV", cs.CurrentMicroamp/1000, cs.VoltageMicrovolt/1000000)
}

// formatChargeTime renders a remaining duration rounded UP to whole minutes:
// "10 min", "2 hr", "1 hr 30 min".
func formatChargeTime(d time.Duration) string {
	mins := int((d + time.Minute - 1) / time.Minute)
	if mins < 1 {
		mins = 1
	}
	if mins < 60 {
		return fmt.Sprintf("%d min", mins)
	}
	h := mins / 60
	m := mins % 60
	if m == 0 {
		return fmt.Sprintf("%d hr", h)
	}
	return fmt.Sprintf("%d hr %d min", h, m)
}
