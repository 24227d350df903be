package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestSchedulerRunOnce(t *testing.T) {
	s := NewScheduler()

	var first, second int
	s.AddJob("first", time.Hour, func(ctx context.Context) error {
		first++
		return errors.New("boom")
	})
	s.AddJob("second", time.Hour, func(ctx context.Context) error {
		second++
		return nil
	})

	s.RunOnce(context.Background())

	if first != 1 {
		t.Errorf("first job ran %d times, want 1", first)
	}
	if second != 1 {
		t.Errorf("second job ran %d times, want 1 even after an earlier job failed", second)
	}
}

func TestSchedulerStartRunsImmediately(t *testing.T) {
	s := NewScheduler()

	var runs atomic.Int32
	done := make(chan struct{})
	s.AddJob("immediate", time.Hour, func(ctx context.Context) error {
		if runs.Add(1) == 1 {
			close(done)
		}
		return nil
	})

	s.Start()
	defer s.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}
	if got := runs.Load(); got != 1 {
		t.Errorf("job ran %d times before the first tick, want 1", got)
	}
}

func TestSchedulerStopCancelsRunningJob(t *testing.T) {
	s := NewScheduler()

	started := make(chan struct{})
	var cancelled atomic.Bool
	s.AddJob("blocking", time.Hour, func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		cancelled.Store(true)
		return ctx.Err()
	})

	s.Start()

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not start")
	}

	s.Stop()

	if !cancelled.Load() {
		t.Error("Stop returned before the job observed cancellation")
	}
}
