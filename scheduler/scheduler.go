package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Option configures a Scheduler
type Option func(*Scheduler)

// WithOnSkip registers a callback invoked whenever a due run is skipped
// because the previous one is still executing
func WithOnSkip(fn func()) Option {
	return func(s *Scheduler) {
		s.onSkip = fn
	}
}

// Scheduler manages a background task that runs at regular intervals.
// At most one run of the task is in flight; a tick that fires while the
// previous run is executing is skipped, not queued.
type Scheduler struct {
	interval time.Duration
	task     func(context.Context)
	onSkip   func()
	wg       sync.WaitGroup
	mu       sync.Mutex
	running  bool
	cancel   context.CancelFunc
	inFlight atomic.Bool
	skipped  atomic.Uint64
	runs     atomic.Uint64
}

// New creates a new Scheduler instance
func New(interval time.Duration, task func(context.Context), opts ...Option) *Scheduler {
	s := &Scheduler{
		interval: interval,
		task:     task,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins executing the task at the specified interval
func (s *Scheduler) Start(ctx context.Context, firstRunImmediately bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.running = true

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		if firstRunImmediately {
			s.trigger(ctx)
		}

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if ctx.Err() != nil {
					return
				}
				s.trigger(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// trigger starts one run of the task unless one is already in flight
func (s *Scheduler) trigger(ctx context.Context) {
	if !s.inFlight.CompareAndSwap(false, true) {
		s.skipped.Add(1)
		if s.onSkip != nil {
			s.onSkip()
		}
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.inFlight.Store(false)
		s.runs.Add(1)
		s.task(ctx)
	}()
}

// Stop cancels the task context and waits for the loop and any in-flight run to return
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	s.running = false
}

// IsRunning returns true if the task is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// InFlight reports whether a run of the task is executing right now
func (s *Scheduler) InFlight() bool {
	return s.inFlight.Load()
}

// Runs returns how many times the task was started
func (s *Scheduler) Runs() uint64 {
	return s.runs.Load()
}

// Skipped returns how many due runs were skipped because of an in-flight run
func (s *Scheduler) Skipped() uint64 {
	return s.skipped.Load()
}
