package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the node's collectors. A nil *Metrics records nothing.
type Metrics struct {
	activity    *prometheus.CounterVec
	wakeups     prometheus.Counter
	decayPasses prometheus.Counter
	statuses    *prometheus.CounterVec
	provisions  *prometheus.CounterVec
	bootStage   prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		activity: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jackdaw_indicator_activity_total",
				Help: "Activity reports per indicator channel",
			},
			[]string{"channel"},
		),
		wakeups: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jackdaw_indicator_wakeups_total",
			Help: "Times an activity report woke an idle renderer",
		}),
		decayPasses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jackdaw_indicator_decay_passes_total",
			Help: "Fast ticks that decayed channel counters",
		}),
		statuses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jackdaw_indicator_status_transitions_total",
				Help: "Status transitions observed by the renderer",
			},
			[]string{"status"},
		),
		provisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jackdaw_identity_provisions_total",
				Help: "Identity provisioning outcomes",
			},
			[]string{"outcome"},
		),
		bootStage: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "jackdaw_boot_stage",
			Help: "Ordinal of the last completed boot stage",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.activity, m.wakeups, m.decayPasses, m.statuses, m.provisions, m.bootStage)
	}
	return m
}

// Activity returns the counter for one channel, resolved once so callers
// can increment it without touching the vector's lock.
func (m *Metrics) Activity(channel string) prometheus.Counter {
	if m == nil {
		return nil
	}
	return m.activity.WithLabelValues(channel)
}

func (m *Metrics) Wakeup() {
	if m != nil {
		m.wakeups.Inc()
	}
}

func (m *Metrics) DecayPass() {
	if m != nil {
		m.decayPasses.Inc()
	}
}

func (m *Metrics) StatusTransition(status string) {
	if m != nil {
		m.statuses.WithLabelValues(status).Inc()
	}
}

func (m *Metrics) Provision(outcome string) {
	if m != nil {
		m.provisions.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) BootStage(ordinal int) {
	if m != nil {
		m.bootStage.Set(float64(ordinal))
	}
}
