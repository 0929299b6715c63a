package sim

import (
	"log/slog"

	"github.com/tamzrod/jackdaw/internal/indicator"
	"github.com/tamzrod/jackdaw/internal/rng"
	"github.com/tamzrod/jackdaw/internal/sched"
)

// Indicator is the part of the engine the traffic generator drives.
type Indicator interface {
	ReportActivity(c indicator.Channel)
	SetStatus(s indicator.Status)
}

// TrafficConfig sets the generator's pace in scheduler ticks.
// A zero Activity disables frames; a zero Enumerate leaves the host link alone.
type TrafficConfig struct {
	Activity  sched.Time
	Enumerate sched.Time
}

// Traffic is a process that fakes radio frames and host enumeration.
type Traffic struct {
	s     *sched.Scheduler
	proc  *sched.Process
	ind   Indicator
	radio *Radio
	rnd   *rng.Pseudo
	cfg   TrafficConfig
	log   *slog.Logger

	frame  sched.Timer
	enum   sched.Timer
	status indicator.Status
	frames uint64
}

func NewTraffic(s *sched.Scheduler, ind Indicator, radio *Radio, rnd *rng.Pseudo, cfg TrafficConfig, log *slog.Logger) *Traffic {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	t := &Traffic{s: s, ind: ind, radio: radio, rnd: rnd, cfg: cfg, log: log}
	t.proc = sched.NewProcess("traffic", t.handle)
	return t
}

func (t *Traffic) Process() *sched.Process { return t.proc }

// Frames counts simulated frames so far.
func (t *Traffic) Frames() uint64 { return t.frames }

func (t *Traffic) handle(ev sched.Event) {
	switch ev {
	case sched.EventInit:
		t.status = indicator.StatusUnenumerated
		t.ind.SetStatus(t.status)
		if t.cfg.Activity > 0 {
			t.s.Set(&t.frame, t.proc, t.jitter())
		}
		if t.cfg.Enumerate > 0 {
			t.s.Set(&t.enum, t.proc, t.cfg.Enumerate)
		}
	case sched.EventTimer:
		if t.cfg.Activity > 0 && t.frame.Expired() {
			t.emit()
			t.s.Set(&t.frame, t.proc, t.jitter())
		}
		if t.cfg.Enumerate > 0 && t.enum.Expired() && t.status < indicator.StatusReady {
			t.status++
			t.ind.SetStatus(t.status)
			t.log.Info("host link", "status", t.status.String())
			if t.status < indicator.StatusReady {
				t.s.Reset(&t.enum)
			}
		}
	}
}

// emit fakes one frame: a reception, a transmission, or a radio power cycle.
func (t *Traffic) emit() {
	t.frames++
	switch indicator.Channel(t.rnd.Intn(3)) {
	case indicator.Receive:
		t.ind.ReportActivity(indicator.Receive)
	case indicator.Transmit:
		t.ind.ReportActivity(indicator.Transmit)
	default:
		if t.radio != nil {
			t.radio.Off()
			t.radio.On()
		} else {
			t.ind.ReportActivity(indicator.Serial)
		}
	}
}

// jitter spreads frames over [Activity/2, 3*Activity/2).
func (t *Traffic) jitter() sched.Time {
	a := t.cfg.Activity
	d := a/2 + sched.Time(t.rnd.Intn(int(a)))
	if d == 0 {
		d = 1
	}
	return d
}
