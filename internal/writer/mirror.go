// internal/writer/mirror.go
package writer

import (
	"context"
	"log/slog"
	"time"

	"github.com/tamzrod/jackdaw/internal/identity"
	"github.com/tamzrod/jackdaw/internal/indicator"
	"github.com/tamzrod/jackdaw/internal/status"
)

// Source produces the snapshot to mirror.
type Source interface {
	Snapshot() status.Snapshot
}

// Node samples the running node. It is safe to call from any goroutine
// because the engine and panel accessors are atomic.
type Node struct {
	Indicator interface{ Status() indicator.Status }
	Lights    interface{ Bits() uint16 }
	Identity  identity.Identity
	Booted    time.Time
}

func (n Node) Snapshot() status.Snapshot {
	s := status.Snapshot{
		Code:     status.CodeBooting,
		Identity: n.Identity,
	}
	if n.Indicator != nil {
		s.Code = statusCode(n.Indicator.Status())
	}
	if n.Lights != nil {
		s.Lights = n.Lights.Bits()
	}
	if !n.Booted.IsZero() {
		s.Uptime = uint32(time.Since(n.Booted) / time.Second)
	}
	return s
}

func statusCode(st indicator.Status) uint16 {
	switch st {
	case indicator.StatusUnenumerated:
		return status.CodeUnenumerated
	case indicator.StatusInactive:
		return status.CodeInactive
	case indicator.StatusReady:
		return status.CodeReady
	default:
		return status.CodeBooting
	}
}

// Mirror writes a fresh snapshot every interval.
type Mirror struct {
	w        StatusWriter
	src      Source
	interval time.Duration
	log      *slog.Logger

	failing bool
}

func NewMirror(w StatusWriter, src Source, interval time.Duration, log *slog.Logger) *Mirror {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &Mirror{w: w, src: src, interval: interval, log: log}
}

// Run writes once immediately, then on every tick until ctx ends.
// Write failures are logged, never returned.
func (m *Mirror) Run(ctx context.Context) error {
	m.WriteOnce()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.WriteOnce()
		}
	}
}

// WriteOnce samples and writes one snapshot. It logs only on state changes
// so a dead endpoint does not flood the log.
func (m *Mirror) WriteOnce() {
	err := m.w.WriteStatus(m.src.Snapshot())
	switch {
	case err != nil && !m.failing:
		m.failing = true
		m.log.Warn("status mirror write failed", "error", err)
	case err == nil && m.failing:
		m.failing = false
		m.log.Info("status mirror recovered")
	}
}
