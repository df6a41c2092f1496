// Package timer schedules callbacks against game time rather than wall time.
//
// A Scheduler only moves when Advance is called from the update loop, so every
// callback runs on that goroutine, to completion, in due-time order. Callbacks
// with equal due times run in the order they were scheduled.
package timer

import "container/heap"

// Timer is a pending callback. The zero value is not usable; obtain one from a Scheduler.
type Timer struct {
	due     float64
	period  float64
	seq     uint64
	fn      func()
	index   int
	stopped bool
	owner   *Scheduler
}

// Stop cancels the timer. It reports whether the timer was still pending.
func (t *Timer) Stop() bool {
	if t == nil || t.stopped {
		return false
	}
	t.stopped = true
	if t.index >= 0 && t.owner != nil {
		heap.Remove(&t.owner.queue, t.index)
	}
	return true
}

// Pending reports whether the timer will still fire.
func (t *Timer) Pending() bool {
	return t != nil && !t.stopped
}

// Due returns the next game time at which the timer fires.
func (t *Timer) Due() float64 {
	return t.due
}

// Scheduler owns a game clock and its pending timers.
type Scheduler struct {
	now    float64
	seq    uint64
	queue  timerQueue
	closed bool
}

// NewScheduler returns a scheduler whose clock starts at zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the current game time in seconds.
func (s *Scheduler) Now() float64 {
	return s.now
}

// Len returns the number of pending timers.
func (s *Scheduler) Len() int {
	return len(s.queue)
}

// Closed reports whether Close has been called.
func (s *Scheduler) Closed() bool {
	return s.closed
}

// After schedules fn to run once, delay seconds from now.
// A closed scheduler returns a timer that never fires.
func (s *Scheduler) After(delay float64, fn func()) *Timer {
	return s.schedule(delay, 0, fn)
}

// Every schedules fn to run first after delay and then every period seconds.
func (s *Scheduler) Every(delay, period float64, fn func()) *Timer {
	if period <= 0 {
		return s.After(delay, fn)
	}
	return s.schedule(delay, period, fn)
}

func (s *Scheduler) schedule(delay, period float64, fn func()) *Timer {
	if delay < 0 {
		delay = 0
	}
	t := &Timer{due: s.now + delay, period: period, fn: fn, index: -1, owner: s}
	if s.closed || fn == nil {
		t.stopped = true
		return t
	}
	s.seq++
	t.seq = s.seq
	heap.Push(&s.queue, t)
	return t
}

// Advance moves the clock forward by dt and fires every timer due at or before
// the new time. Timers scheduled by callbacks fire in the same call if they are due.
func (s *Scheduler) Advance(dt float64) {
	if s.closed {
		return
	}
	target := s.now + dt
	for len(s.queue) > 0 && !s.closed {
		next := s.queue[0]
		if next.due > target {
			break
		}
		heap.Pop(&s.queue)
		s.now = next.due
		if next.period > 0 {
			next.due += next.period
			s.seq++
			next.seq = s.seq
			heap.Push(&s.queue, next)
		} else {
			next.stopped = true
		}
		next.fn()
	}
	if !s.closed {
		s.now = target
	}
}

// Close stops every pending timer; later scheduling calls are no-ops.
func (s *Scheduler) Close() {
	if s.closed {
		return
	}
	s.closed = true
	for _, t := range s.queue {
		t.stopped = true
		t.index = -1
	}
	s.queue = nil
}

type timerQueue []*Timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].due == q[j].due {
		return q[i].seq < q[j].seq
	}
	return q[i].due < q[j].due
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*Timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
