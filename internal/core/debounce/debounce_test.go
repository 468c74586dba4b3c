package debounce

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_CollapsesRapidTriggers(t *testing.T) {
	d := New(50 * time.Millisecond)
	defer d.Stop()

	var runs int64
	for i := 0; i < 10; i++ {
		d.Trigger(func() { atomic.AddInt64(&runs, 1) })
		time.Sleep(5 * time.Millisecond)
	}

	// Only the last scheduled run should fire.
	assert.Eventually(t, func() bool {
		return atomic.LoadInt64(&runs) == 1
	}, time.Second, 10*time.Millisecond)

	// And nothing else afterwards.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int64(1), atomic.LoadInt64(&runs))
}

func TestDebouncer_LatestTriggerWins(t *testing.T) {
	d := New(30 * time.Millisecond)
	defer d.Stop()

	var got atomic.Value
	d.Trigger(func() { got.Store("first") })
	d.Trigger(func() { got.Store("second") })

	assert.Eventually(t, func() bool {
		v, ok := got.Load().(string)
		return ok && v == "second"
	}, time.Second, 5*time.Millisecond)
}

func TestDebouncer_Stop(t *testing.T) {
	d := New(30 * time.Millisecond)

	var runs int64
	d.Trigger(func() { atomic.AddInt64(&runs, 1) })
	d.Stop()

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int64(0), atomic.LoadInt64(&runs))
}

func TestNew_NonPositiveQuietFallsBack(t *testing.T) {
	d := New(0)
	assert.Equal(t, DefaultQuiet, d.quiet)
}
