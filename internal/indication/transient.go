package indication

import (
	"time"

	"github.com/sweeney/lock-indication/internal/sched"
)

// TransientStore holds at most one active transient message and its auto-hide
// timer. Showing a new message cancels any pending timer; the timer must be
// re-armed with HideAfter if the new message should also expire.
type TransientStore struct {
	scheduler sched.Scheduler
	active    Transient
	hideTimer sched.Handle

	// onExpire is called after the auto-hide timer clears a message, so the
	// controller can re-resolve and push the next indication.
	onExpire func()
}

// NewTransientStore creates a store. onExpire must not be nil.
func NewTransientStore(scheduler sched.Scheduler, onExpire func()) *TransientStore {
	return &TransientStore{
		scheduler: scheduler,
		onExpire:  onExpire,
	}
}

// Show replaces the active message and cancels any pending auto-hide timer.
func (s *TransientStore) Show(text string, c Color) {
	s.cancelTimer()
	s.active = Transient{Text: text, Color: c}
}

// Hide clears the active message and its timer. It reports whether a message
// was actually cleared, so callers can skip a redundant resolve.
func (s *TransientStore) Hide() bool {
	if s.active.Text == "" {
		return false
	}
	s.cancelTimer()
	s.active = Transient{}
	return true
}

// HideAfter (re)schedules the auto-hide timer. It does not touch the active
// message; a later Show cancels the timer again.
func (s *TransientStore) HideAfter(d time.Duration) {
	s.cancelTimer()
	s.hideTimer = s.scheduler.AfterFunc(d, func() {
		s.hideTimer = nil
		if s.active.Text == "" {
			return
		}
		s.active = Transient{}
		s.onExpire()
	})
}

// Active returns the current transient message (zero value when none).
func (s *TransientStore) Active() Transient {
	return s.active
}

// TimerPending reports whether an auto-hide timer is armed.
func (s *TransientStore) TimerPending() bool {
	return s.hideTimer != nil
}

func (s *TransientStore) cancelTimer() {
	if s.hideTimer != nil {
		s.hideTimer.Stop()
		s.hideTimer = nil
	}
}
