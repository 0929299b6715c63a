package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tamzrod/jackdaw/internal/boot"
	"github.com/tamzrod/jackdaw/internal/config"
	"github.com/tamzrod/jackdaw/internal/identity"
	"github.com/tamzrod/jackdaw/internal/indicator"
	"github.com/tamzrod/jackdaw/internal/metrics"
	"github.com/tamzrod/jackdaw/internal/rng"
	"github.com/tamzrod/jackdaw/internal/sched"
	"github.com/tamzrod/jackdaw/internal/sim"
	"github.com/tamzrod/jackdaw/internal/watchdog"
	"github.com/tamzrod/jackdaw/internal/writer"
)

var errWatchdog = errors.New("watchdog expired")

// watchdogGrace is how long a stuck loop gets to notice cancellation
// before the process is terminated.
const watchdogGrace = 2 * time.Second

func runCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Boot the node and run until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg, log)
		},
	}
}

// run boots the node and supervises the scheduler loop, the metrics
// endpoint and the status mirror until ctx ends or the watchdog bites.
func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	store, err := openStore(cfg.Settings)
	if err != nil {
		return err
	}
	defer store.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	// --------------------
	// Collaborators
	// --------------------

	clock := sched.NewSystemClock()
	s := sched.New(clock, log.With("component", "sched"))

	var panel indicator.Panel
	lightLog := log.With("component", "lights")
	panel.Receive.Next = &indicator.LogLight{Name: "rx", Log: lightLog}
	panel.Transmit.Next = &indicator.LogLight{Name: "tx", Log: lightLog}
	panel.Serial.Next = &indicator.LogLight{Name: "serial", Log: lightLog}
	panel.Status.Next = &indicator.LogLight{Name: "status", Log: lightLog}

	eng := indicator.New(s, panel.Lights(), indicatorConfig(cfg.Indicator),
		indicator.WithMetrics(m),
		indicator.WithLogger(log.With("component", "indicator")),
	)

	radio := sim.NewRadio(eng, log.With("component", "radio"))
	prng := rng.NewPseudo()
	entropy := rng.Hardware{}

	seq := identity.NewSequencer(store, entropy,
		identity.WithLogger(log.With("component", "identity")),
		identity.WithMetrics(m),
	)

	wd := watchdog.New(cfg.Watchdog.Timeout(), func() {
		cancel(errWatchdog)
		time.AfterFunc(watchdogGrace, func() {
			log.Error("main loop did not stop after watchdog expiry, exiting")
			os.Exit(2)
		})
	}, log.With("component", "watchdog"))
	defer wd.Stop()

	netProc := sched.NewProcess("tcpip", func(ev sched.Event) {
		if ev == sched.EventInit {
			log.Debug("network process up")
		}
	})

	autostart := []*sched.Process{eng.Process()}
	if !cfg.Sim.Disabled {
		traffic := sim.NewTraffic(s, eng, radio, prng, sim.TrafficConfig{
			Activity:  sched.Ticks(time.Duration(cfg.Sim.ActivityMs) * time.Millisecond),
			Enumerate: sched.Ticks(time.Duration(cfg.Sim.EnumerateMs) * time.Millisecond),
		}, log.With("component", "sim"))
		autostart = append(autostart, traffic.Process())
	}

	o, err := boot.New(boot.Deps{
		Watchdog:  wd,
		Clock:     clock,
		Scheduler: s,
		Radio:     radio,
		Entropy:   entropy,
		PRNG:      prng,
		Identity:  seq,
		Stack: boot.Stack{
			RDC:     sim.NewLayer(sim.LayerRDC, log),
			MAC:     sim.NewLayer(sim.LayerMAC, log),
			Network: sim.NewLayer(sim.LayerNetwork, log),
		},
		NetProcess: netProc,
		Autostart:  autostart,
		Log:        log.With("component", "boot"),
		Metrics:    m,
		IdleWait:   idleWait(cfg.Watchdog.Timeout()),
	})
	if err != nil {
		return err
	}

	// --------------------
	// Boot
	// --------------------

	log.Info("booting", "hostname", cfg.Node.Hostname, "settings", cfg.Settings.Backend)
	id, err := o.Boot(ctx)
	if err != nil {
		return err
	}
	booted := time.Now()

	var mirror *writer.Mirror
	if cfg.Mirror.Enabled {
		plan, err := writer.BuildPlan(*cfg)
		if err != nil {
			return err
		}
		cli, err := writer.BuildEndpointClient(plan, cfg.Mirror.Timeout())
		if err != nil {
			return fmt.Errorf("status mirror client: %w", err)
		}
		defer cli.Close()

		node := writer.Node{Indicator: eng, Lights: &panel, Identity: id, Booted: booted}
		mirror = writer.NewMirror(writer.NewNodeStatusWriter(plan, cli), node, cfg.Mirror.Interval(),
			log.With("component", "mirror"))
		log.Info("status mirror enabled", "transport", plan.Transport, "endpoint", plan.Endpoint, "base_slot", plan.BaseSlot)
	}

	// --------------------
	// Supervise
	// --------------------

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return o.Run(gctx)
	})

	if cfg.Metrics.Listen != "" {
		g.Go(func() error {
			return serveMetrics(gctx, cfg.Metrics.Listen, reg, log)
		})
	}

	if mirror != nil {
		g.Go(func() error {
			return mirror.Run(gctx)
		})
	}

	err = g.Wait()
	if cause := context.Cause(ctx); errors.Is(cause, errWatchdog) {
		return cause
	}
	if ctx.Err() != nil {
		log.Info("shutting down")
		return nil
	}
	return err
}

// indicatorConfig converts the configured rates into scheduler ticks.
func indicatorConfig(c config.IndicatorConfig) indicator.Config {
	cfg := indicator.DefaultConfig()
	if c.FastHz > 0 {
		cfg.Fast = max(sched.Second/sched.Time(c.FastHz), 1)
	}
	if c.InactiveMs > 0 {
		cfg.Inactive = sched.Ticks(time.Duration(c.InactiveMs) * time.Millisecond)
	}
	if c.UnenumeratedMs > 0 {
		cfg.Unenumerated = sched.Ticks(time.Duration(c.UnenumeratedMs) * time.Millisecond)
	}
	return cfg
}

// idleWait keeps idle sleeps well inside the watchdog timeout.
func idleWait(timeout time.Duration) time.Duration {
	const ceiling = 250 * time.Millisecond
	if timeout <= 0 {
		return ceiling
	}
	return min(timeout/4, ceiling)
}

func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry, log *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("metrics listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}
