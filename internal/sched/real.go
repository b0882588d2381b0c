package sched

import "time"

// Real schedules via time.AfterFunc and hands fired callbacks to a post
// function that enqueues them on the event loop.
type Real struct {
	post func(func())
}

// NewReal creates a Real scheduler. post must deliver the function to the
// goroutine that owns all indication state.
func NewReal(post func(func())) *Real {
	return &Real{post: post}
}

// AfterFunc schedules fn to be posted after d.
func (r *Real) AfterFunc(d time.Duration, fn func()) Handle {
	h := &realHandle{}
	h.timer = time.AfterFunc(d, func() {
		r.post(func() {
			// The timer may have fired and queued this callback just
			// before Stop was called on the loop. The flag is only
			// touched on the loop goroutine, so a plain read is safe.
			if !h.stopped {
				fn()
			}
		})
	})
	return h
}

type realHandle struct {
	timer   *time.Timer
	stopped bool
}

func (h *realHandle) Stop() bool {
	h.stopped = true
	return h.timer.Stop()
}
