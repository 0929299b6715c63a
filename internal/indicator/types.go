package indicator

import (
	"github.com/tamzrod/jackdaw/internal/sched"
)

// Channel is one activity light.
type Channel uint8

const (
	Receive Channel = iota
	Transmit
	Serial

	numChannels
)

func (c Channel) String() string {
	switch c {
	case Receive:
		return "rx"
	case Transmit:
		return "tx"
	case Serial:
		return "serial"
	default:
		return "unknown"
	}
}

// ---- decay encoding ----
//
// A report ORs the raise mask into the channel's counter. Each fast tick
// decrements it by one and the light shows the display bit, so a single
// report gives a short pulse that ends before the counter reaches zero.

// raiseMask is ORed into the counter by ReportActivity.
func (c Channel) raiseMask() uint32 {
	if c == Serial {
		return 1 << 3
	}
	return 1 << 2
}

// displayBit selects the counter bit that drives the light while decaying.
func (c Channel) displayBit() uint32 {
	if c == Serial {
		return 1 << 2
	}
	return 1 << 1
}

// Status is the host-link state shown on the status light.
type Status uint32

const (
	// StatusUnenumerated is the power-on state: the host has not configured the device.
	StatusUnenumerated Status = iota
	// StatusInactive means enumerated but the network interface is down.
	StatusInactive
	// StatusReady means the host interface is up.
	StatusReady
)

func (s Status) String() string {
	switch s {
	case StatusUnenumerated:
		return "unenumerated"
	case StatusInactive:
		return "inactive"
	case StatusReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Blinks reports whether the status light toggles in this state.
func (s Status) Blinks() bool { return s != StatusReady }

// Period is how long the state waits between status ticks.
// Ready does not toggle but still ticks at the Inactive period.
func (s Status) Period(cfg Config) sched.Time {
	if s == StatusUnenumerated {
		return cfg.Unenumerated
	}
	return cfg.Inactive
}

// Config holds the renderer's periods in scheduler ticks.
type Config struct {
	Fast         sched.Time
	Inactive     sched.Time
	Unenumerated sched.Time
}

// DefaultConfig: 30 Hz decay, 8 Hz inactive blink, 3 Hz unenumerated blink.
func DefaultConfig() Config {
	return Config{
		Fast:         sched.Second / 30,
		Inactive:     sched.Second / 8,
		Unenumerated: sched.Second / 3,
	}
}
