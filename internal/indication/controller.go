package indication

import (
	"time"

	"github.com/sweeney/lock-indication/internal/sched"
)

// Options configures a Controller.
type Options struct {
	Display  Display
	Session  SessionState
	Bouncer  Bouncer // may be nil when no secondary-auth surface exists
	LockIcon LockIcon
	// ChargeTimer estimates remaining charge time; may be nil.
	ChargeTimer ChargeTimer
	Scheduler   sched.Scheduler
	Messages    Messages

	WarningColor Color

	SlowThresholdMicrowatt int
	FastThresholdMicrowatt int

	ShowChargingCurrent bool
	DebugChargingSpeed  bool
}

// Controller wires the resolver, transient store, charging tracker, and
// fingerprint dispatcher together and exposes the public API. All methods
// must be called from the single goroutine that owns the event loop.
type Controller struct {
	display Display
	session SessionState

	resolver   *Resolver
	store      *TransientStore
	tracker    *ChargingTracker
	dispatcher *Dispatcher

	visible bool
	resting string

	// fingerprintAllowed mirrors the monitor's running/permitted state;
	// help and error events are dropped while false.
	fingerprintAllowed bool

	// lastText/lastColor cache what was last pushed, for the status page.
	lastText  string
	lastColor Color

	counts EventCounts
}

// NewController builds and wires the indication core.
func NewController(opts Options) *Controller {
	c := &Controller{
		display:  opts.Display,
		session:  opts.Session,
		resolver: NewResolver(opts.Messages, opts.ChargeTimer, opts.ShowChargingCurrent, opts.DebugChargingSpeed),
		tracker:  NewChargingTracker(opts.SlowThresholdMicrowatt, opts.FastThresholdMicrowatt),
	}
	c.store = NewTransientStore(opts.Scheduler, c.updateIndication)
	c.dispatcher = &Dispatcher{
		scheduler:          opts.Scheduler,
		session:            opts.Session,
		bouncer:            opts.Bouncer,
		lockIcon:           opts.LockIcon,
		warningColor:       opts.WarningColor,
		unlockAllowed:      func() bool { return c.fingerprintAllowed },
		showTransient:      c.ShowTransientColor,
		hideTransient:      c.HideTransient,
		hideTransientAfter: c.HideTransientAfter,
		lastErrorCode:      noErrorCode,
		counts:             &c.counts,
	}
	return c
}

// SetVisible shows or hides the indication area. Turning visible drops any
// stale transient and recomputes immediately.
func (c *Controller) SetVisible(visible bool) {
	c.visible = visible
	c.display.SetVisibility(visible)
	if visible {
		c.HideTransient()
		c.updateIndication()
	}
}

// SetRestingIndication sets the message shown when nothing else is.
func (c *Controller) SetRestingIndication(resting string) {
	c.resting = resting
	c.updateIndication()
}

// ShowTransient shows text in the default color until hidden.
func (c *Controller) ShowTransient(text string) {
	c.ShowTransientColor(text, White)
}

// ShowTransientColor shows text until hidden or replaced. Any pending
// auto-hide timer is cancelled.
func (c *Controller) ShowTransientColor(text string, col Color) {
	c.store.Show(text, col)
	c.counts.TransientsShown++
	c.updateIndication()
}

// HideTransient clears the transient message, if any.
func (c *Controller) HideTransient() {
	if c.store.Hide() {
		c.updateIndication()
	}
}

// HideTransientAfter clears the transient message after d.
func (c *Controller) HideTransientAfter(d time.Duration) {
	c.store.HideAfter(d)
}

// OnBatteryUpdate digests a battery snapshot and recomputes.
func (c *Controller) OnBatteryUpdate(status BatteryStatus) {
	c.tracker.Update(status)
	c.updateIndication()
}

// OnUserUnlockedChanged recomputes after the user's storage unlock state
// changed. The unlock state itself is read from the session source at
// resolve time.
func (c *Controller) OnUserUnlockedChanged() {
	if c.visible {
		c.updateIndication()
	}
}

// OnTick refreshes the charging indication so the remaining-time text stays
// current. No-op while hidden.
func (c *Controller) OnTick() {
	if c.visible {
		c.updateIndication()
	}
}

// SetFingerprintUnlockAllowed gates the help/error entry points.
func (c *Controller) SetFingerprintUnlockAllowed(allowed bool) {
	c.fingerprintAllowed = allowed
}

// OnFingerprintHelp relays a help event to the dispatcher.
func (c *Controller) OnFingerprintHelp(code int, text string) {
	c.dispatcher.OnHelp(code, text)
}

// OnFingerprintError relays an error event to the dispatcher.
func (c *Controller) OnFingerprintError(code int, text string) {
	c.dispatcher.OnError(code, text)
}

// OnFingerprintAuthenticated relays a successful authentication.
func (c *Controller) OnFingerprintAuthenticated() {
	c.dispatcher.OnAuthenticated()
}

// OnFingerprintAuthFailed relays a rejected attempt.
func (c *Controller) OnFingerprintAuthFailed() {
	c.dispatcher.OnAuthFailed()
}

// OnFingerprintRunningStateChanged relays sensor start/stop. A starting
// sensor also re-permits help/error display and drops any deferred message.
func (c *Controller) OnFingerprintRunningStateChanged(running bool) {
	c.fingerprintAllowed = running
	c.dispatcher.OnRunningStateChanged(running)
}

// OnScreenTurnedOn surfaces a deferred error message, if one is waiting.
func (c *Controller) OnScreenTurnedOn() {
	c.dispatcher.OnScreenTurnedOn()
}

// updateIndication assembles a fresh snapshot, resolves it, and pushes the
// result to the display. While not visible the resolve still happens but the
// result is discarded; SetVisible(true) recomputes.
func (c *Controller) updateIndication() {
	in := Inputs{
		Visible:      c.visible,
		UserUnlocked: c.session.IsUserUnlocked(),
		Transient:    c.store.Active(),
		Charging:     c.tracker.State(),
		Resting:      c.resting,
	}
	text, col := c.resolver.Resolve(in)
	if !in.Visible {
		return
	}
	c.lastText = text
	c.lastColor = col
	c.display.SwitchIndication(text)
	c.display.SetTextColor(col)
}

// Snapshot is a point-in-time view of the controller for the status page.
type Snapshot struct {
	Visible          bool
	Text             string
	Color            Color
	Resting          string
	Transient        Transient
	TransientPending bool
	Charging         ChargingState
	DeferredMessage  string
	Counts           EventCounts
}

// State returns a copy of the controller's current state.
func (c *Controller) State() Snapshot {
	return Snapshot{
		Visible:          c.visible,
		Text:             c.lastText,
		Color:            c.lastColor,
		Resting:          c.resting,
		Transient:        c.store.Active(),
		TransientPending: c.store.TimerPending(),
		Charging:         c.tracker.State(),
		DeferredMessage:  c.dispatcher.PendingScreenOnMessage(),
		Counts:           c.counts,
	}
}
