// Package scheduler runs housekeeping tasks at fixed intervals, such as
// removing QR images left behind by interrupted receipt generation.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Task is a named function run every Interval. A run is cut off after
// Timeout when set.
type Task struct {
	Name     string
	Interval time.Duration
	Timeout  time.Duration
	// RunOnStart runs the task once right after Start
	RunOnStart bool
	Run        func(ctx context.Context) error
}

// TaskStats describes the last runs of a task.
type TaskStats struct {
	Runs      int
	Failures  int
	LastRun   time.Time
	LastError string
}

// Scheduler runs each task on its own ticker goroutine.
type Scheduler struct {
	logger *zap.Logger

	mu        sync.Mutex
	tasks     []Task
	stats     map[string]*TaskStats
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	isRunning bool
}

// NewScheduler creates an idle scheduler
func NewScheduler(logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{logger: logger, stats: make(map[string]*TaskStats)}
}

// Add registers t. Tasks cannot be added once the scheduler runs.
func (s *Scheduler) Add(t Task) error {
	if t.Name == "" || t.Interval <= 0 || t.Run == nil {
		return fmt.Errorf("%w: %q", ErrInvalidTask, t.Name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		return ErrSchedulerRunning
	}
	s.tasks = append(s.tasks, t)
	s.stats[t.Name] = &TaskStats{}
	return nil
}

// Start launches the task loops.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		return
	}
	s.isRunning = true
	ctx, s.cancel = context.WithCancel(ctx)
	for _, t := range s.tasks {
		s.wg.Add(1)
		go s.loop(ctx, t)
	}
	s.logger.Info("Scheduler started", zap.Int("tasks", len(s.tasks)))
}

// Stop cancels the loops and waits for running tasks until ctx expires.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.cancel()
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		s.logger.Info("Scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Scheduler stop timed out")
		return ctx.Err()
	}
}

// Stats returns a copy of the statistics of the named task.
func (s *Scheduler) Stats(name string) (TaskStats, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.stats[name]
	if !ok {
		return TaskStats{}, false
	}
	return *st, true
}

func (s *Scheduler) loop(ctx context.Context, t Task) {
	defer s.wg.Done()
	if t.RunOnStart {
		s.runOnce(ctx, t)
	}
	ticker := time.NewTicker(t.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx, t)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context, t Task) {
	runCtx := ctx
	if t.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}

	err := s.safeRun(runCtx, t)

	s.mu.Lock()
	st := s.stats[t.Name]
	st.Runs++
	st.LastRun = time.Now()
	st.LastError = ""
	if err != nil {
		st.Failures++
		st.LastError = err.Error()
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("Scheduled task failed", zap.String("task", t.Name), zap.Error(err))
		return
	}
	s.logger.Debug("Scheduled task completed", zap.String("task", t.Name))
}

func (s *Scheduler) safeRun(ctx context.Context, t Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task %s panicked: %v", t.Name, r)
		}
	}()
	return t.Run(ctx)
}
