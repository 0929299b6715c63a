package boot

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/tamzrod/jackdaw/internal/identity"
	"github.com/tamzrod/jackdaw/internal/metrics"
	"github.com/tamzrod/jackdaw/internal/rng"
	"github.com/tamzrod/jackdaw/internal/sched"
)

// ---- collaborators ----

// Watchdog resets the node unless petted.
type Watchdog interface {
	Start()
	Periodic()
}

// Clock is the tick source the scheduler reads; Reset starts it at zero.
type Clock interface {
	sched.Clock
	Reset()
}

// Radio is the transceiver driver.
type Radio interface {
	Init()
	SetPanAddr(panID, panAddr uint16, eui identity.EUI64)
	SetChannel(ch uint8)
	SetTxPower(power uint8)
}

// Layer is one protocol stack layer.
type Layer interface {
	Name() string
	Init()
}

// NodeAddresser is implemented by a network layer that needs the link-layer address.
type NodeAddresser interface {
	SetNodeAddr(eui identity.EUI64)
}

// Stack is the protocol stack, bottom up.
type Stack struct {
	RDC     Layer
	MAC     Layer
	Network Layer
}

// Seeder accepts a seed for the stack's pseudo-random generator.
type Seeder interface {
	Seed(seed byte)
}

// Deps is everything bring-up touches.
type Deps struct {
	Watchdog  Watchdog
	Clock     Clock
	Scheduler *sched.Scheduler
	Radio     Radio
	Entropy   rng.Source
	PRNG      Seeder
	Identity  *identity.Sequencer
	Stack     Stack

	NetProcess *sched.Process
	Autostart  []*sched.Process

	Log     *slog.Logger
	Metrics *metrics.Metrics

	// IdleWait bounds each idle sleep of the run loop so the watchdog keeps being petted.
	IdleWait time.Duration
}

var ErrAlreadyBooted = errors.New("boot: already booted")

// Orchestrator runs bring-up once, then the cooperative loop.
type Orchestrator struct {
	d      Deps
	done   []Stage
	booted bool
	id     identity.Identity
}

func New(d Deps) (*Orchestrator, error) {
	if d.Scheduler == nil {
		return nil, errors.New("boot: scheduler required")
	}
	if d.Identity == nil {
		return nil, errors.New("boot: identity sequencer required")
	}
	if d.Entropy == nil {
		return nil, errors.New("boot: entropy source required")
	}
	if d.Log == nil {
		d.Log = slog.New(slog.DiscardHandler)
	}
	if d.IdleWait <= 0 {
		d.IdleWait = 250 * time.Millisecond
	}
	return &Orchestrator{d: d}, nil
}

// Boot executes every stage in order. No stage is retried; a second call
// returns ErrAlreadyBooted.
func (o *Orchestrator) Boot(ctx context.Context) (identity.Identity, error) {
	if o.booted {
		return identity.Identity{}, ErrAlreadyBooted
	}
	o.booted = true

	d := o.d
	steps := []struct {
		stage Stage
		run   func()
	}{
		{StageWatchdog, func() {
			if d.Watchdog != nil {
				d.Watchdog.Start()
			}
		}},
		{StageClock, func() {
			if d.Clock != nil {
				d.Clock.Reset()
			}
		}},
		{StageRuntime, d.Scheduler.Init},
		{StageRadio, func() {
			if d.Radio != nil {
				d.Radio.Init()
			}
		}},
		{StageSeed, func() {
			// Seeds frame sequence numbers so a quick restart does not
			// replay ones that duplicate filters still remember.
			if d.PRNG != nil {
				d.PRNG.Seed(d.Entropy.NextByte())
			}
		}},
		{StageIdentity, func() {
			id, outcome := d.Identity.Ensure(ctx)
			o.id = id
			d.Log.Info("identity", "eui64", id.EUI.String(), "outcome", outcome.String())
		}},
		{StageRadioParams, func() {
			if na, ok := d.Stack.Network.(NodeAddresser); ok {
				na.SetNodeAddr(o.id.EUI)
			}
			if d.Radio != nil {
				d.Radio.SetPanAddr(o.id.PanID, o.id.PanAddr, o.id.EUI)
				d.Radio.SetChannel(o.id.Channel)
				d.Radio.SetTxPower(o.id.TxPower)
			}
		}},
		{StageRDC, func() { initLayer(d.Stack.RDC) }},
		{StageMAC, func() { initLayer(d.Stack.MAC) }},
		{StageNetwork, func() { initLayer(d.Stack.Network) }},
		{StageNetProcess, func() {
			if d.NetProcess != nil {
				d.Scheduler.Start(d.NetProcess)
			}
		}},
		{StageAutostart, func() {
			for _, p := range d.Autostart {
				d.Scheduler.Start(p)
			}
		}},
	}

	for _, st := range steps {
		st.run()
		o.done = append(o.done, st.stage)
		d.Metrics.BootStage(int(st.stage))
		d.Log.Debug("boot stage done", "stage", st.stage.String())
	}

	d.Log.Info("ready",
		"mac", layerName(d.Stack.MAC),
		"rdc", layerName(d.Stack.RDC),
		"channel", o.id.Channel,
		"pan_id", o.id.PanID,
		"tx_power", o.id.TxPower,
	)
	return o.id, nil
}

// Completed lists the stages that have finished, in order.
func (o *Orchestrator) Completed() []Stage {
	return append([]Stage(nil), o.done...)
}

// Run lets scheduled work execute and pets the watchdog every pass.
// It returns only when ctx ends.
func (o *Orchestrator) Run(ctx context.Context) error {
	if !o.booted {
		return errors.New("boot: Run called before Boot")
	}

	s := o.d.Scheduler
	for {
		n := s.RunOnce()
		if o.d.Watchdog != nil {
			o.d.Watchdog.Periodic()
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if n == 0 {
			if err := s.Wait(ctx, o.d.IdleWait); err != nil {
				return err
			}
		}
	}
}

func initLayer(l Layer) {
	if l != nil {
		l.Init()
	}
}

func layerName(l Layer) string {
	if l == nil {
		return "none"
	}
	return l.Name()
}
