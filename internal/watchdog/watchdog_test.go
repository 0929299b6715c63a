package watchdog

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpiresWithoutPetting(t *testing.T) {
	var fired atomic.Int32
	w := New(10*time.Millisecond, func() { fired.Add(1) }, nil)
	w.Start()

	require.Eventually(t, w.Expired, time.Second, time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())

	w.Periodic()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load(), "expiry fires once")
}

func TestPettingKeepsItAlive(t *testing.T) {
	var fired atomic.Int32
	w := New(40*time.Millisecond, func() { fired.Add(1) }, nil)
	w.Start()
	defer w.Stop()

	end := time.Now().Add(150 * time.Millisecond)
	for time.Now().Before(end) {
		w.Periodic()
		time.Sleep(5 * time.Millisecond)
	}

	assert.False(t, w.Expired())
	assert.Zero(t, fired.Load())
}

func TestNotArmedBeforeStart(t *testing.T) {
	var fired atomic.Int32
	w := New(5*time.Millisecond, func() { fired.Add(1) }, nil)

	w.Periodic()
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, fired.Load())
}

func TestStopDisarms(t *testing.T) {
	var fired atomic.Int32
	w := New(10*time.Millisecond, func() { fired.Add(1) }, nil)
	w.Start()
	w.Stop()

	time.Sleep(30 * time.Millisecond)
	assert.Zero(t, fired.Load())
	assert.False(t, w.Expired())
}
