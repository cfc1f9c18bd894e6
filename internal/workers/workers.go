// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/glory-keeper/internal/logger"
)

var (
	ErrAlreadyStarted = errors.New("scheduler already started")
	ErrInvalidTask    = errors.New("invalid task")
)

// Scheduler runs a fixed set of tasks until stopped.
type Scheduler struct {
	tasks  []Task
	clock  clockwork.Clock
	logger *logger.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
}

// NewScheduler validates tasks and returns an idle scheduler. A nil clock
// means the real clock.
func NewScheduler(clock clockwork.Clock, log *logger.Logger, tasks ...Task) (*Scheduler, error) {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	for _, t := range tasks {
		if t.Name == "" || t.Run == nil || t.Interval <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTask, t.Name)
		}
	}

	return &Scheduler{
		tasks:  tasks,
		clock:  clock,
		logger: log.Component("scheduler"),
	}, nil
}

// Start launches one goroutine per task. The first run of every task
// happens one interval after Start. Tasks stop when ctx is cancelled or
// Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrAlreadyStarted
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.started = true

	for _, task := range s.tasks {
		s.wg.Add(1)
		go s.loop(runCtx, task)
	}

	s.logger.Info().Int("tasks", len(s.tasks)).Msg("scheduler started")
	return nil
}

// Stop cancels every task and waits for in-flight runs to return. It gives
// up waiting when ctx is done and returns ctx.Err(). Stopping an idle
// scheduler is a no-op.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info().Msg("scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn().Msg("scheduler stop timed out")
		return ctx.Err()
	}
}

func (s *Scheduler) loop(ctx context.Context, task Task) {
	defer s.wg.Done()

	timer := s.clock.NewTimer(task.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.Chan():
			s.runOnce(ctx, task)
			if ctx.Err() != nil {
				return
			}
			timer.Reset(task.Interval)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context, task Task) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().
				Str("func", "Scheduler.runOnce").
				Str("task", task.Name).
				Interface("panic", r).
				Msg("task panicked")
		}
	}()

	started := s.clock.Now()
	err := task.Run(ctx)
	elapsed := s.clock.Since(started)

	if err != nil {
		s.logger.Err(err).
			Str("func", "Scheduler.runOnce").
			Str("task", task.Name).
			Dur("elapsed", elapsed).
			Msg("task failed")
		return
	}

	s.logger.Debug().
		Str("task", task.Name).
		Dur("elapsed", elapsed).
		Msg("task finished")
}

// Every is a helper that wraps fn into a [Task].
func Every(name string, interval time.Duration, fn RunFunc) Task {
	return Task{Name: name, Interval: interval, Run: fn}
}
