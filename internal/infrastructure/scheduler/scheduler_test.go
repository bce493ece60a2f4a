package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sereci/sirepre/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestScheduler_Add(t *testing.T) {
	s := NewScheduler(zap.NewNop())

	assert.ErrorIs(t, s.Add(Task{Name: "x", Interval: 0, Run: func(context.Context) error { return nil }}), ErrInvalidTask)
	assert.ErrorIs(t, s.Add(Task{Name: "", Interval: time.Second, Run: func(context.Context) error { return nil }}), ErrInvalidTask)
	assert.ErrorIs(t, s.Add(Task{Name: "x", Interval: time.Second}), ErrInvalidTask)

	require.NoError(t, s.Add(Task{Name: "ok", Interval: time.Hour, Run: func(context.Context) error { return nil }}))
	s.Start(context.Background())
	defer func() { _ = s.Stop(context.Background()) }()
	assert.ErrorIs(t, s.Add(Task{Name: "late", Interval: time.Hour, Run: func(context.Context) error { return nil }}), ErrSchedulerRunning)
}

func TestScheduler_RunsTasks(t *testing.T) {
	s := NewScheduler(nil)
	var ticks atomic.Int32
	require.NoError(t, s.Add(Task{
		Name:       "count",
		Interval:   10 * time.Millisecond,
		RunOnStart: true,
		Run: func(context.Context) error {
			ticks.Add(1)
			return nil
		},
	}))
	require.NoError(t, s.Add(Task{
		Name:     "fail",
		Interval: 10 * time.Millisecond,
		Run:      func(context.Context) error { return errors.New("disk full") },
	}))
	require.NoError(t, s.Add(Task{
		Name:     "panic",
		Interval: 10 * time.Millisecond,
		Run:      func(context.Context) error { panic("boom") },
	}))

	s.Start(context.Background())
	testutil.RequireEventually(t, func() bool { return ticks.Load() >= 3 }, time.Second, 5*time.Millisecond)
	testutil.RequireEventually(t, func() bool {
		st, _ := s.Stats("panic")
		return st.Failures > 0
	}, time.Second, 5*time.Millisecond)

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(stopCtx))
	require.NoError(t, s.Stop(stopCtx))

	st, ok := s.Stats("fail")
	require.True(t, ok)
	assert.Equal(t, "disk full", st.LastError)
	assert.Equal(t, st.Runs, st.Failures)

	pst, _ := s.Stats("panic")
	assert.Contains(t, pst.LastError, "panicked")

	_, ok = s.Stats("missing")
	assert.False(t, ok)
}

func TestScheduler_TimeoutCancelsRun(t *testing.T) {
	s := NewScheduler(nil)
	require.NoError(t, s.Add(Task{
		Name:       "slow",
		Interval:   time.Hour,
		Timeout:    10 * time.Millisecond,
		RunOnStart: true,
		Run: func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		},
	}))
	s.Start(context.Background())
	testutil.RequireEventually(t, func() bool {
		st, _ := s.Stats("slow")
		return st.Runs == 1
	}, time.Second, 5*time.Millisecond)
	require.NoError(t, s.Stop(context.Background()))

	st, _ := s.Stats("slow")
	assert.Equal(t, context.DeadlineExceeded.Error(), st.LastError)
}
