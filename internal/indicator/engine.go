package indicator

import (
	"log/slog"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tamzrod/jackdaw/internal/metrics"
	"github.com/tamzrod/jackdaw/internal/sched"
)

// Engine renders activity counters and host-link status onto the lights.
//
// ReportActivity, SetStatus, RadioOn, RadioOff, WillSleep and DidWake may be
// called from any goroutine and never block. Everything else happens inside
// the engine's process on the scheduler goroutine.
type Engine struct {
	sched   *sched.Scheduler
	proc    *sched.Process
	lights  Lights
	cfg     Config
	log     *slog.Logger
	metrics *metrics.Metrics
	reports [numChannels]prometheus.Counter

	// Shared with reporters. Counters are only raised by OR and only
	// lowered by the renderer.
	counters [numChannels]atomic.Uint32
	status   atomic.Uint32
	ticking  atomic.Bool
	wake     atomic.Bool
	radioOn  atomic.Bool
	asleep   atomic.Bool
	decays   atomic.Uint64

	// Renderer-owned.
	fast     sched.Timer
	running  bool
	blink    sched.Timer
	shown    Status
	statusOn bool
}

type Option func(*Engine)

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// New builds an engine. Call Start to begin rendering.
func New(s *sched.Scheduler, lights Lights, cfg Config, opts ...Option) *Engine {
	e := &Engine{
		sched:  s,
		lights: lights,
		cfg:    cfg,
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	for c := Channel(0); c < numChannels; c++ {
		e.reports[c] = e.metrics.Activity(c.String())
	}
	e.status.Store(uint32(StatusUnenumerated))
	e.proc = sched.NewProcess("status-leds", e.handle)
	return e
}

// Process returns the render process, for boot-time autostart.
func (e *Engine) Process() *sched.Process { return e.proc }

// Start queues the render process on the scheduler.
func (e *Engine) Start() { e.sched.Start(e.proc) }

// ---- event entry points ----

// ReportActivity lights the channel for a short, bounded pulse.
// If the renderer is idle it is woken immediately.
func (e *Engine) ReportActivity(c Channel) {
	if c >= numChannels {
		return
	}

	wasIdle := e.idle()
	e.counters[c].Or(c.raiseMask())

	// The renderer clears ticking before its last look at the counters, so
	// either it sees this OR or we see ticking=false and wake it.
	if wasIdle || !e.ticking.Load() {
		e.wake.Store(true)
		e.sched.Poll(e.proc)
		e.metrics.Wakeup()
	}

	if r := e.reports[c]; r != nil {
		r.Inc()
	}
}

// SetStatus replaces the host-link status. The next render applies it.
func (e *Engine) SetStatus(s Status) {
	if s > StatusReady {
		return
	}
	e.status.Store(uint32(s))
}

// Status returns the last status set.
func (e *Engine) Status() Status { return Status(e.status.Load()) }

// RadioOn reports a radio off-to-on edge as serial activity.
func (e *Engine) RadioOn() {
	if !e.radioOn.Swap(true) {
		e.ReportActivity(Serial)
	}
}

func (e *Engine) RadioOff() { e.radioOn.Store(false) }

// WillSleep darkens a solid Ready light for the duration of a sleep.
func (e *Engine) WillSleep() {
	e.asleep.Store(true)
	e.sched.Poll(e.proc)
}

func (e *Engine) DidWake() {
	e.asleep.Store(false)
	e.sched.Poll(e.proc)
}

// Counter returns the channel's current decay counter.
func (e *Engine) Counter(c Channel) uint32 {
	if c >= numChannels {
		return 0
	}
	return e.counters[c].Load()
}

// DecayPasses counts fast ticks that did decay work.
func (e *Engine) DecayPasses() uint64 { return e.decays.Load() }

func (e *Engine) idle() bool {
	for c := range e.counters {
		if e.counters[c].Load() != 0 {
			return false
		}
	}
	return true
}

// ---- renderer ----

func (e *Engine) handle(ev sched.Event) {
	if ev == sched.EventInit {
		e.init()
		return
	}
	e.renderStatus()
	e.renderChannels()
}

func (e *Engine) init() {
	for c := Channel(0); c < numChannels; c++ {
		set(e.lights.channel(c), false)
	}
	e.sched.Set(&e.fast, e.proc, e.cfg.Fast)
	e.running = true
	e.ticking.Store(true)
	e.enter(e.Status())
}

// enter starts a fresh phase of st so it shows within one period.
func (e *Engine) enter(st Status) {
	e.shown = st
	if st.Blinks() {
		e.setStatusLight(true)
	} else {
		e.setStatusLight(!e.asleep.Load())
	}
	e.sched.Set(&e.blink, e.proc, st.Period(e.cfg))
	e.metrics.StatusTransition(st.String())
	e.log.Debug("indicator status", "status", st.String())
}

func (e *Engine) renderStatus() {
	st := e.Status()

	switch {
	case st != e.shown:
		e.enter(st)
	case e.blink.Expired():
		if st.Blinks() {
			e.setStatusLight(!e.statusOn)
		}
		e.sched.Set(&e.blink, e.proc, st.Period(e.cfg))
	}

	if st == StatusReady {
		e.setStatusLight(!e.asleep.Load())
	}
}

func (e *Engine) setStatusLight(on bool) {
	e.statusOn = on
	set(e.lights.Status, on)
}

// renderChannels runs when the fast timer fired or a report woke an idle
// renderer. Status ticks and other polls leave the counters alone.
func (e *Engine) renderChannels() {
	due := e.running && e.fast.Expired()
	if e.wake.Swap(false) {
		due = true
	}
	if !due {
		return
	}

	e.decays.Add(1)
	e.metrics.DecayPass()

	for c := Channel(0); c < numChannels; c++ {
		e.decay(c)
	}

	// Re-read every counter after decay: a channel can reach zero while
	// another is still running, or a report can land mid-pass.
	if !e.idle() {
		e.tick()
		return
	}
	e.running = false
	e.ticking.Store(false)
	if !e.idle() {
		e.tick()
	}
}

func (e *Engine) tick() {
	e.sched.Restart(&e.fast)
	e.running = true
	e.ticking.Store(true)
}

func (e *Engine) decay(c Channel) {
	ctr := &e.counters[c]
	light := e.lights.channel(c)

	for {
		old := ctr.Load()
		if old == 0 {
			set(light, false)
			return
		}
		if ctr.CompareAndSwap(old, old-1) {
			set(light, (old-1)&c.displayBit() != 0)
			return
		}
	}
}
