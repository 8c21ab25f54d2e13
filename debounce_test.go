package charts

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncerCoalesce(t *testing.T) {
	var calls atomic.Int32
	d := newDebouncer(30*time.Millisecond, func() {
		calls.Add(1)
	})
	for range 10 {
		d.Trigger()
		time.Sleep(2 * time.Millisecond)
	}
	assert.True(t, d.Pending())
	assert.Eventually(t, func() bool {
		return calls.Load() == 1
	}, time.Second, 5*time.Millisecond)

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
	assert.False(t, d.Pending())
}

func TestDebouncerSeparateWindows(t *testing.T) {
	var calls atomic.Int32
	d := newDebouncer(10*time.Millisecond, func() {
		calls.Add(1)
	})
	d.Trigger()
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 2*time.Millisecond)
	d.Trigger()
	assert.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, 2*time.Millisecond)
}

func TestDebouncerStop(t *testing.T) {
	var calls atomic.Int32
	d := newDebouncer(10*time.Millisecond, func() {
		calls.Add(1)
	})
	d.Trigger()
	d.Stop()
	d.Trigger()
	time.Sleep(40 * time.Millisecond)
	assert.Zero(t, calls.Load())
	assert.False(t, d.Pending())
}

func TestDebouncerDefaultDelay(t *testing.T) {
	d := newDebouncer(0, func() {})
	assert.Equal(t, DefaultDebounce, d.delay)
	d.SetDelay(-1)
	assert.Equal(t, DefaultDebounce, d.delay)
	d.SetDelay(time.Millisecond)
	assert.Equal(t, time.Millisecond, d.delay)
}
