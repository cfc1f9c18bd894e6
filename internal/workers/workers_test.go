package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/glory-keeper/internal/logger"
)

func waitSignal(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("task did not run")
	}
}

func blockUntil(t *testing.T, fc *clockwork.FakeClock, n int) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, fc.BlockUntilContext(ctx, n))
}

func TestNewScheduler_RejectsInvalidTask(t *testing.T) {
	tests := []Task{
		{Name: "", Interval: time.Second, Run: func(context.Context) error { return nil }},
		{Name: "x", Interval: 0, Run: func(context.Context) error { return nil }},
		{Name: "x", Interval: time.Second},
	}
	for _, task := range tests {
		_, err := NewScheduler(nil, logger.Nop(), task)
		assert.ErrorIs(t, err, ErrInvalidTask)
	}
}

func TestScheduler_RunsAfterEachInterval(t *testing.T) {
	fc := clockwork.NewFakeClock()
	ran := make(chan struct{}, 1)
	var calls atomic.Int32

	s, err := NewScheduler(fc, logger.Nop(), Every("tick", time.Minute, func(context.Context) error {
		calls.Add(1)
		ran <- struct{}{}
		return nil
	}))
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop(context.Background())

	blockUntil(t, fc, 1)
	assert.Zero(t, calls.Load())

	fc.Advance(time.Minute)
	waitSignal(t, ran)

	blockUntil(t, fc, 1)
	fc.Advance(time.Minute)
	waitSignal(t, ran)

	assert.Equal(t, int32(2), calls.Load())
}

func TestScheduler_ErrorAndPanicDoNotStopTask(t *testing.T) {
	fc := clockwork.NewFakeClock()
	ran := make(chan struct{}, 1)
	var calls atomic.Int32

	s, err := NewScheduler(fc, logger.Nop(), Every("flaky", time.Second, func(context.Context) error {
		n := calls.Add(1)
		defer func() { ran <- struct{}{} }()
		switch n {
		case 1:
			return errors.New("boom")
		case 2:
			panic("kaboom")
		}
		return nil
	}))
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop(context.Background())

	for range 3 {
		blockUntil(t, fc, 1)
		fc.Advance(time.Second)
		waitSignal(t, ran)
	}
	assert.Equal(t, int32(3), calls.Load())
}

func TestScheduler_TaskNeverOverlapsItself(t *testing.T) {
	fc := clockwork.NewFakeClock()
	release := make(chan struct{})
	entered := make(chan struct{}, 4)
	var inside, maxInside atomic.Int32

	s, err := NewScheduler(fc, logger.Nop(), Every("slow", time.Second, func(ctx context.Context) error {
		n := inside.Add(1)
		if n > maxInside.Load() {
			maxInside.Store(n)
		}
		entered <- struct{}{}
		select {
		case <-release:
		case <-ctx.Done():
		}
		inside.Add(-1)
		return nil
	}))
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))

	blockUntil(t, fc, 1)
	fc.Advance(time.Second)
	waitSignal(t, entered)

	// The timer is not re-armed while the run is in flight.
	fc.Advance(10 * time.Second)
	select {
	case <-entered:
		t.Fatal("task overlapped itself")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	require.NoError(t, s.Stop(context.Background()))
	assert.Equal(t, int32(1), maxInside.Load())
}

func TestScheduler_TasksAreIndependent(t *testing.T) {
	fc := clockwork.NewFakeClock()
	block := make(chan struct{})
	fast := make(chan struct{}, 1)

	s, err := NewScheduler(fc, logger.Nop(),
		Every("stuck", time.Second, func(ctx context.Context) error {
			select {
			case <-block:
			case <-ctx.Done():
			}
			return nil
		}),
		Every("fast", time.Second, func(context.Context) error {
			fast <- struct{}{}
			return nil
		}),
	)
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))
	defer close(block)
	defer s.Stop(context.Background())

	blockUntil(t, fc, 2)
	fc.Advance(time.Second)
	waitSignal(t, fast)

	blockUntil(t, fc, 1)
	fc.Advance(time.Second)
	waitSignal(t, fast)
}

func TestScheduler_StartTwice(t *testing.T) {
	s, err := NewScheduler(clockwork.NewFakeClock(), logger.Nop())
	require.NoError(t, err)

	require.NoError(t, s.Start(context.Background()))
	assert.ErrorIs(t, s.Start(context.Background()), ErrAlreadyStarted)
	assert.NoError(t, s.Stop(context.Background()))
}

func TestScheduler_StopIdle(t *testing.T) {
	s, err := NewScheduler(nil, logger.Nop())
	require.NoError(t, err)
	assert.NoError(t, s.Stop(context.Background()))
}

func TestScheduler_StopBoundedByContext(t *testing.T) {
	fc := clockwork.NewFakeClock()
	entered := make(chan struct{}, 1)
	release := make(chan struct{})
	defer close(release)

	s, err := NewScheduler(fc, logger.Nop(), Every("stubborn", time.Second, func(context.Context) error {
		entered <- struct{}{}
		<-release
		return nil
	}))
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))

	blockUntil(t, fc, 1)
	fc.Advance(time.Second)
	waitSignal(t, entered)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, s.Stop(ctx), context.DeadlineExceeded)
}
