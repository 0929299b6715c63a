package sched

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Event tells a process why it is being run.
type Event uint8

const (
	EventInit Event = iota + 1
	EventPoll
	EventTimer
)

func (e Event) String() string {
	switch e {
	case EventInit:
		return "init"
	case EventPoll:
		return "poll"
	case EventTimer:
		return "timer"
	default:
		return "unknown"
	}
}

// Process is a cooperatively scheduled task.
// Its handler runs to completion on the scheduler goroutine and must not block.
type Process struct {
	name   string
	handle func(Event)

	polled  atomic.Bool
	runs    atomic.Uint64
	started bool
}

func NewProcess(name string, handle func(Event)) *Process {
	return &Process{name: name, handle: handle}
}

func (p *Process) Name() string { return p.name }

// Runs reports how many events the process has handled.
func (p *Process) Runs() uint64 { return p.runs.Load() }

// Timer delivers EventTimer to its owner once its interval has elapsed.
// Timers belong to the scheduler goroutine; do not touch them elsewhere.
type Timer struct {
	start    Time
	interval Time
	owner    *Process
	pending  bool
	listed   bool
}

// Expired reports whether the timer is not pending: it fired, was stopped, or was never set.
func (t *Timer) Expired() bool { return !t.pending }

func (t *Timer) Interval() Time { return t.interval }

// Scheduler runs processes one at a time.
//
// Every method except Poll must be called from the goroutine that calls RunOnce.
// Poll is the single cross-goroutine entry point.
type Scheduler struct {
	clock Clock
	log   *slog.Logger

	procs    []*Process
	starting []*Process
	timers   []*Timer

	wake chan struct{}
}

func New(clock Clock, log *slog.Logger) *Scheduler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Scheduler{
		clock: clock,
		log:   log,
		wake:  make(chan struct{}, 1),
	}
}

// Init drops every process and timer.
func (s *Scheduler) Init() {
	s.procs = nil
	s.starting = nil
	s.timers = nil
}

func (s *Scheduler) Now() Time { return s.clock.Now() }

// Start queues p for its EventInit. Starting a started process is a no-op.
func (s *Scheduler) Start(p *Process) {
	if p.started {
		return
	}
	p.started = true
	s.starting = append(s.starting, p)
	s.log.Debug("process started", "process", p.name)
	s.signal()
}

// Poll asks for p to receive EventPoll on the next pass.
// Safe from any goroutine; never blocks. A poll of a process that has not
// started yet is delivered right after its EventInit.
func (s *Scheduler) Poll(p *Process) {
	p.polled.Store(true)
	s.signal()
}

func (s *Scheduler) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Set arms t for owner, interval ticks from now.
func (s *Scheduler) Set(t *Timer, owner *Process, interval Time) {
	t.owner = owner
	t.interval = interval
	t.start = s.clock.Now()
	s.arm(t)
}

// Restart arms t again with the same interval, counted from now.
func (s *Scheduler) Restart(t *Timer) {
	t.start = s.clock.Now()
	s.arm(t)
}

// Reset arms t again, counted from its previous expiry so periods do not drift.
func (s *Scheduler) Reset(t *Timer) {
	t.start += t.interval
	s.arm(t)
}

// Stop disarms t. It reads as expired afterwards.
func (s *Scheduler) Stop(t *Timer) {
	t.pending = false
}

func (s *Scheduler) arm(t *Timer) {
	t.pending = true
	if !t.listed {
		t.listed = true
		s.timers = append(s.timers, t)
	}
}

// RunOnce delivers every event that is due: inits first, then polls, then
// expired timers. It returns the number of events delivered.
func (s *Scheduler) RunOnce() int {
	n := 0

	for len(s.starting) > 0 {
		p := s.starting[0]
		s.starting = s.starting[1:]
		s.procs = append(s.procs, p)
		s.dispatch(p, EventInit)
		n++
	}

	for _, p := range s.procs {
		if p.polled.Swap(false) {
			s.dispatch(p, EventPoll)
			n++
		}
	}

	now := s.clock.Now()
	for _, t := range s.timers {
		if !t.pending || t.owner == nil || !t.owner.started {
			continue
		}
		if Elapsed(t.start, now) >= t.interval {
			t.pending = false
			s.dispatch(t.owner, EventTimer)
			n++
		}
	}

	return n
}

func (s *Scheduler) dispatch(p *Process, ev Event) {
	p.runs.Add(1)
	p.handle(ev)
}

// Next returns the ticks until the earliest event is due.
// ok is false when nothing is pending at all.
func (s *Scheduler) Next() (Time, bool) {
	if len(s.starting) > 0 {
		return 0, true
	}
	for _, p := range s.procs {
		if p.polled.Load() {
			return 0, true
		}
	}

	now := s.clock.Now()
	var (
		best  Time
		found bool
	)
	for _, t := range s.timers {
		if !t.pending {
			continue
		}
		left := Time(0)
		if el := Elapsed(t.start, now); el < t.interval {
			left = t.interval - el
		}
		if !found || left < best {
			best = left
			found = true
		}
	}
	return best, found
}

// Wait sleeps until the next event is due, a Poll arrives, max passes or ctx ends.
func (s *Scheduler) Wait(ctx context.Context, max time.Duration) error {
	d := max
	if next, ok := s.Next(); ok {
		if next == 0 {
			return ctx.Err()
		}
		if nd := next.Duration(); nd < d {
			d = nd
		}
	}

	tm := time.NewTimer(d)
	defer tm.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.wake:
	case <-tm.C:
	}
	return nil
}
