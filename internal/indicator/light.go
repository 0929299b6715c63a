package indicator

import (
	"log/slog"
	"sync/atomic"
)

// Light is one physical indicator output.
type Light interface {
	Set(on bool)
}

// Lights groups the four outputs the engine drives. Nil entries are skipped.
type Lights struct {
	Receive  Light
	Transmit Light
	Serial   Light
	Status   Light
}

func (l Lights) channel(c Channel) Light {
	switch c {
	case Receive:
		return l.Receive
	case Transmit:
		return l.Transmit
	case Serial:
		return l.Serial
	default:
		return nil
	}
}

func set(l Light, on bool) {
	if l != nil {
		l.Set(on)
	}
}

// Lamp remembers its last level so other goroutines can read it,
// and forwards every change to Next.
type Lamp struct {
	Next Light
	on   atomic.Bool
}

func (l *Lamp) Set(on bool) {
	l.on.Store(on)
	set(l.Next, on)
}

// On reports the last level set.
func (l *Lamp) On() bool { return l.on.Load() }

// LogLight logs level changes at debug.
type LogLight struct {
	Name string
	Log  *slog.Logger

	known bool
	on    bool
}

func (l *LogLight) Set(on bool) {
	if l.known && l.on == on {
		return
	}
	l.known = true
	l.on = on
	if l.Log != nil {
		l.Log.Debug("indicator", "light", l.Name, "on", on)
	}
}

// Panel is a set of Lamps wired as Lights, readable from any goroutine.
type Panel struct {
	Receive  Lamp
	Transmit Lamp
	Serial   Lamp
	Status   Lamp
}

// Lights returns the panel as engine outputs.
func (p *Panel) Lights() Lights {
	return Lights{
		Receive:  &p.Receive,
		Transmit: &p.Transmit,
		Serial:   &p.Serial,
		Status:   &p.Status,
	}
}

// Bits packs the current levels: bit 0 rx, 1 tx, 2 serial, 3 status.
func (p *Panel) Bits() uint16 {
	var b uint16
	for i, on := range []bool{p.Receive.On(), p.Transmit.On(), p.Serial.On(), p.Status.On()} {
		if on {
			b |= 1 << i
		}
	}
	return b
}
