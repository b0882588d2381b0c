package indication

import (
	"time"

	"github.com/sweeney/lock-indication/internal/sched"
)

const (
	// transientFPErrorTimeout is how long a help message and the lock-icon
	// error flag stay up.
	transientFPErrorTimeout = 1300 * time.Millisecond
	// errorHideDelay is how long an error message stays up.
	errorHideDelay = 5000 * time.Millisecond

	// Error codes that mean the operation was cancelled rather than failed.
	// These are never shown.
	ErrorCanceled     = 5
	ErrorUserCanceled = 10

	noErrorCode = -1
)

// Dispatcher routes fingerprint help/error/auth events to the secondary-auth
// surface or the transient store, deduplicates consecutive identical error
// codes on the bouncer, and defers error messages raised while the screen is
// off.
type Dispatcher struct {
	scheduler sched.Scheduler
	session   SessionState
	bouncer   Bouncer
	lockIcon  LockIcon

	warningColor Color

	// unlockAllowed reports whether fingerprint unlock is currently
	// permitted (sensor running, not in lockout).
	unlockAllowed func() bool

	// Transient-store operations, supplied by the controller so every show
	// also triggers a resolve+display.
	showTransient      func(text string, c Color)
	hideTransient      func()
	hideTransientAfter func(d time.Duration)

	// lastErrorCode suppresses an immediate exact repeat of the same error
	// on the bouncer. A swipe right after an error re-runs authentication
	// and would otherwise re-surface the identical generic message.
	lastErrorCode int

	// screenOnMessage holds an error raised while the screen was off, shown
	// exactly once on the next screen-on.
	screenOnMessage string

	clearHelpTimer sched.Handle

	counts *EventCounts
}

// OnHelp handles a fingerprint help event (finger moved too fast, sensor
// dirty, ...).
func (d *Dispatcher) OnHelp(code int, text string) {
	if !d.unlockAllowed() {
		return
	}
	if d.bouncer != nil && d.bouncer.IsShowing() {
		d.bouncer.ShowMessage(text, d.warningColor)
		d.counts.BouncerMessages++
	} else if d.session.IsInteractive() {
		d.lockIcon.SetTransientFingerprintError(true)
		d.showTransient(text, d.warningColor)
		if d.clearHelpTimer != nil {
			d.clearHelpTimer.Stop()
		}
		d.clearHelpTimer = d.scheduler.AfterFunc(transientFPErrorTimeout, func() {
			d.clearHelpTimer = nil
			d.lockIcon.SetTransientFingerprintError(false)
			d.hideTransient()
		})
	}
	d.counts.FingerprintHelp++
	// A help event means there was an attempt since the last error, so the
	// next error is no longer a successive repeat.
	d.lastErrorCode = noErrorCode
}

// OnError handles a fingerprint error event (lockout, hardware failure, ...).
func (d *Dispatcher) OnError(code int, text string) {
	if !d.unlockAllowed() || code == ErrorCanceled || code == ErrorUserCanceled {
		return
	}
	if d.bouncer != nil && d.bouncer.IsShowing() {
		if code != d.lastErrorCode {
			d.bouncer.ShowMessage(text, d.warningColor)
			d.counts.BouncerMessages++
		}
	} else if d.session.IsInteractive() {
		d.showTransient(text, d.warningColor)
		d.hideTransientAfter(errorHideDelay)
	} else {
		// Screen is off. Keep the message for the next screen-on.
		d.screenOnMessage = text
		d.counts.DeferredScreenOn++
	}
	d.counts.FingerprintErrors++
	d.lastErrorCode = code
}

// OnAuthenticated handles a successful fingerprint authentication.
func (d *Dispatcher) OnAuthenticated() {
	d.lastErrorCode = noErrorCode
}

// OnAuthFailed handles a rejected (non-matching) fingerprint.
func (d *Dispatcher) OnAuthFailed() {
	d.lastErrorCode = noErrorCode
}

// OnScreenTurnedOn surfaces a deferred error message, once.
func (d *Dispatcher) OnScreenTurnedOn() {
	if d.screenOnMessage == "" {
		return
	}
	d.showTransient(d.screenOnMessage, d.warningColor)
	d.hideTransientAfter(errorHideDelay)
	d.screenOnMessage = ""
}

// OnRunningStateChanged drops any deferred message once the sensor is live
// again; fresh events supersede it.
func (d *Dispatcher) OnRunningStateChanged(running bool) {
	if running {
		d.screenOnMessage = ""
	}
}

// PendingScreenOnMessage returns the deferred error text (empty when none).
func (d *Dispatcher) PendingScreenOnMessage() string {
	return d.screenOnMessage
}
