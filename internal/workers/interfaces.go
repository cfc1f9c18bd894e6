// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the periodic background tasks of the daemon.
//
// A [Scheduler] owns a set of [Task] values. Every task gets its own
// goroutine and its own timer; the timer is re-armed only after a run
// returns, so a slow task delays itself and never the others.
package workers

import (
	"context"
	"time"
)

// Worker is the lifecycle contract the server uses for background workers.
type Worker interface {
	// Start launches the worker. It returns immediately.
	Start(ctx context.Context) error

	// Stop cancels the worker and waits for it to finish, bounded by ctx.
	Stop(ctx context.Context) error
}

// RunFunc is the body of a periodic task.
type RunFunc func(ctx context.Context) error

// Task describes one periodic job.
type Task struct {
	Name     string
	Interval time.Duration
	Run      RunFunc
}
