package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsRecordNothing(t *testing.T) {
	var m *Metrics

	assert.Nil(t, m.Activity("rx"))
	m.Wakeup()
	m.DecayPass()
	m.StatusTransition("ready")
	m.Provision("loaded")
	m.BootStage(3)
}

func TestCollectorsRegisterAndCount(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Activity("tx").Inc()
	m.Activity("tx").Inc()
	m.Provision("provisioned")
	m.BootStage(7)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.activity.WithLabelValues("tx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.provisions.WithLabelValues("provisioned")))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.bootStage))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
