package watchdog

import (
	"log/slog"
	"sync"
	"time"
)

// Watchdog calls OnExpire if Periodic is not called within the timeout.
// Once expired it stays expired; the caller is expected to restart the node.
type Watchdog struct {
	timeout  time.Duration
	onExpire func()
	log      *slog.Logger

	mu       sync.Mutex
	timer    *time.Timer
	deadline time.Time
	expired  bool
}

func New(timeout time.Duration, onExpire func(), log *slog.Logger) *Watchdog {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if onExpire == nil {
		onExpire = func() {}
	}
	return &Watchdog{timeout: timeout, onExpire: onExpire, log: log}
}

// Start arms the watchdog. Starting an armed watchdog is a no-op.
func (w *Watchdog) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil || w.expired {
		return
	}
	w.deadline = time.Now().Add(w.timeout)
	w.timer = time.AfterFunc(w.timeout, w.fire)
	w.log.Debug("watchdog armed", "timeout", w.timeout)
}

// Periodic pushes the deadline out by one timeout.
func (w *Watchdog) Periodic() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer == nil || w.expired {
		return
	}
	w.deadline = time.Now().Add(w.timeout)
}

// Stop disarms the watchdog.
func (w *Watchdog) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

func (w *Watchdog) Expired() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.expired
}

func (w *Watchdog) fire() {
	w.mu.Lock()
	if w.timer == nil || w.expired {
		w.mu.Unlock()
		return
	}
	// Periodic only moves the deadline; the timer catches up here.
	if left := time.Until(w.deadline); left > 0 {
		w.timer.Reset(left)
		w.mu.Unlock()
		return
	}
	w.expired = true
	w.mu.Unlock()

	w.log.Error("watchdog expired", "timeout", w.timeout)
	w.onExpire()
}
