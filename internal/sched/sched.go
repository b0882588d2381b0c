// Package sched provides cancelable one-shot timers with abstraction for
// testing. The real implementation posts fired callbacks back onto the event
// loop so all state mutation stays on one goroutine; the fake lets tests fire
// timers manually.
package sched

import "time"

// Handle is a scheduled task that can be stopped before it runs.
type Handle interface {
	// Stop cancels the task. It reports whether the task was still pending.
	// Stopping an already-fired or already-stopped task is a no-op.
	Stop() bool
}

// Scheduler schedules one-shot tasks.
type Scheduler interface {
	// AfterFunc runs fn after d. fn is invoked on the owner's event loop,
	// never concurrently with other scheduled or loop work.
	AfterFunc(d time.Duration, fn func()) Handle
}
