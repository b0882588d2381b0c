package sched

import "time"

// Fake is a manual scheduler for tests. Tasks never fire on their own; tests
// call Fire or Advance.
type Fake struct {
	// Tasks contains every task ever scheduled, in order, including fired
	// and stopped ones.
	Tasks []*FakeTask
}

// FakeTask is a scheduled task recorded by Fake.
type FakeTask struct {
	Delay   time.Duration
	Stopped bool
	Fired   bool
	fn      func()
}

// NewFake creates a Fake scheduler.
func NewFake() *Fake {
	return &Fake{}
}

// AfterFunc records the task and returns its handle.
func (f *Fake) AfterFunc(d time.Duration, fn func()) Handle {
	task := &FakeTask{Delay: d, fn: fn}
	f.Tasks = append(f.Tasks, task)
	return task
}

// Stop cancels the task.
func (t *FakeTask) Stop() bool {
	if t.Fired || t.Stopped {
		return false
	}
	t.Stopped = true
	return true
}

// Fire runs the task now unless it was stopped or already fired.
func (t *FakeTask) Fire() bool {
	if t.Fired || t.Stopped {
		return false
	}
	t.Fired = true
	t.fn()
	return true
}

// Pending returns the number of tasks that are neither fired nor stopped.
func (f *Fake) Pending() int {
	n := 0
	for _, t := range f.Tasks {
		if !t.Fired && !t.Stopped {
			n++
		}
	}
	return n
}

// FireAll fires every pending task in scheduling order. Tasks scheduled by
// fired tasks are picked up too.
func (f *Fake) FireAll() int {
	n := 0
	for i := 0; i < len(f.Tasks); i++ {
		if f.Tasks[i].Fire() {
			n++
		}
	}
	return n
}

// Last returns the most recently scheduled task, or nil.
func (f *Fake) Last() *FakeTask {
	if len(f.Tasks) == 0 {
		return nil
	}
	return f.Tasks[len(f.Tasks)-1]
}
