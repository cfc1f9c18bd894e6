// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server is the lifecycle contract of the daemon.
type Server interface {
	// RunServer serves until ctx is cancelled or a termination signal
	// arrives, then shuts everything down and returns.
	RunServer(ctx context.Context) error
}

// Shutdowner is a component that stops in the graceful shutdown sequence.
// Shutdown must return once ctx is done even if work is still pending.
type Shutdowner interface {
	Shutdown(ctx context.Context) error
}

// ShutdownFunc adapts a function to [Shutdowner].
type ShutdownFunc func(ctx context.Context) error

func (f ShutdownFunc) Shutdown(ctx context.Context) error {
	return f(ctx)
}
