package worker

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestScheduler_RunsAfterDelay(t *testing.T) {
	s := NewScheduler(zap.NewNop(), 20*time.Millisecond)
	defer s.Stop()

	var calls atomic.Int32
	require.True(t, s.Schedule("a", func() { calls.Add(1) }))
	assert.True(t, s.Pending("a"))
	assert.Equal(t, int32(0), calls.Load(), "must not fire before the delay")

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.False(t, s.Pending("a"))
	assert.Equal(t, 0, s.Len())
}

func TestScheduler_RescheduleCancelsPrevious(t *testing.T) {
	s := NewScheduler(zap.NewNop(), 30*time.Millisecond)
	defer s.Stop()

	var first, second atomic.Int32
	s.Schedule("a", func() { first.Add(1) })
	s.Schedule("a", func() { second.Add(1) })

	assert.Eventually(t, func() bool { return second.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), first.Load(), "superseded transition must not fire")
}

func TestScheduler_KeysAreIndependent(t *testing.T) {
	s := NewScheduler(zap.NewNop(), 10*time.Millisecond)
	defer s.Stop()

	var calls atomic.Int32
	s.Schedule("a", func() { calls.Add(1) })
	s.Schedule("b", func() { calls.Add(1) })

	assert.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestScheduler_Cancel(t *testing.T) {
	s := NewScheduler(zap.NewNop(), 20*time.Millisecond)
	defer s.Stop()

	var calls atomic.Int32
	s.Schedule("a", func() { calls.Add(1) })
	assert.True(t, s.Cancel("a"))
	assert.False(t, s.Cancel("a"), "second cancel has nothing to cancel")

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestScheduler_Stop(t *testing.T) {
	s := NewScheduler(zap.NewNop(), time.Hour)

	var calls atomic.Int32
	s.Schedule("a", func() { calls.Add(1) })
	s.Schedule("b", func() { calls.Add(1) })

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}

	assert.Equal(t, int32(0), calls.Load())
	assert.False(t, s.Schedule("c", func() { calls.Add(1) }), "stopped scheduler rejects new work")
}
