package sched

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAfter_Fires(t *testing.T) {
	t.Parallel()

	s := New()
	defer s.Stop()

	done := make(chan struct{})
	s.After("fire", 10*time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduled action never fired")
	}
}

func TestAfter_SameTokenReplaces(t *testing.T) {
	t.Parallel()

	s := New()
	defer s.Stop()

	var fired atomic.Int32
	done := make(chan int32, 2)

	s.After("token", 20*time.Millisecond, func() {
		fired.Add(1)
		done <- 1
	})
	// Re-triggering under the same token cancels the first action.
	s.After("token", 20*time.Millisecond, func() {
		fired.Add(1)
		done <- 2
	})

	select {
	case which := <-done:
		assert.Equal(t, int32(2), which, "only the replacement runs")
	case <-time.After(time.Second):
		t.Fatal("replacement action never fired")
	}

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}

func TestCancel(t *testing.T) {
	t.Parallel()

	s := New()
	defer s.Stop()

	var fired atomic.Bool
	s.After("cancel-me", 20*time.Millisecond, func() { fired.Store(true) })

	require.True(t, s.Cancel("cancel-me"))
	assert.False(t, s.Cancel("cancel-me"), "second cancel finds nothing pending")

	time.Sleep(50 * time.Millisecond)
	assert.False(t, fired.Load())
}

func TestStop_CancelsEverything(t *testing.T) {
	t.Parallel()

	s := New()

	var fired atomic.Int32
	for _, token := range []string{"a", "b", "c"} {
		s.After(token, 20*time.Millisecond, func() { fired.Add(1) })
	}
	s.Stop()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}

func TestDebounce_CoalescesBursts(t *testing.T) {
	t.Parallel()

	var fired atomic.Int32
	trigger := Debounce(30*time.Millisecond, func() { fired.Add(1) })

	for i := 0; i < 10; i++ {
		trigger()
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load(), "a burst collapses to one call")

	trigger()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(2), fired.Load(), "a later trigger fires again")
}
