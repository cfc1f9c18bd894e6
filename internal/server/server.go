// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/glory-keeper/internal/config"
	"github.com/MKhiriev/glory-keeper/internal/handler"
	"github.com/MKhiriev/glory-keeper/internal/logger"
	"github.com/MKhiriev/glory-keeper/internal/workers"
)

// Components are the long-running parts stopped by the server, in
// shutdown order after the HTTP server.
type Components struct {
	Scheduler workers.Worker
	Farming   Shutdowner
	Notifier  Shutdowner
}

type server struct {
	httpServer *httpServer
	components Components

	shutdownTimeout time.Duration

	logger *logger.Logger
}

func NewServer(handlers *handler.Handlers, components Components, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil || cfg.HTTPAddress == "" {
		return nil, errNoHTTPServer
	}

	return &server{
		httpServer:      newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		components:      components,
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}, nil
}

func (s *server) RunServer(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	return s.run(ctx, s.httpServer.RunServer)
}

// run serves with serve until ctx is done or serve fails, then performs the
// shutdown sequence.
func (s *server) run(ctx context.Context, serve func() error) error {
	if s.components.Scheduler != nil {
		if err := s.components.Scheduler.Start(ctx); err != nil {
			return fmt.Errorf("%w: %w", errSchedulerNotStart, err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(serve)
	g.Go(func() error {
		<-gctx.Done()
		return s.shutdown()
	})

	err := g.Wait()
	if err != nil {
		s.logger.Err(err).Str("func", "*server.run").Msg("server stopped with error")
		return err
	}

	s.logger.Info().Msg("server shutdown gracefully")
	return nil
}

type shutdownStep struct {
	name string
	fn   func(ctx context.Context) error
}

// shutdown stops the HTTP server, the scheduler, the farming workers and
// the notifier in this order. Each step gets its own timeout and a failed
// step does not prevent the next ones.
func (s *server) shutdown() error {
	steps := []shutdownStep{{"http", s.httpServer.Shutdown}}
	if s.components.Scheduler != nil {
		steps = append(steps, shutdownStep{"scheduler", s.components.Scheduler.Stop})
	}
	if s.components.Farming != nil {
		steps = append(steps, shutdownStep{"farming", s.components.Farming.Shutdown})
	}
	if s.components.Notifier != nil {
		steps = append(steps, shutdownStep{"notifier", s.components.Notifier.Shutdown})
	}

	var errs []error
	for _, step := range steps {
		if err := s.step(step.name, step.fn); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *server) step(name string, fn func(ctx context.Context) error) error {
	ctx := context.Background()
	if s.shutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.shutdownTimeout)
		defer cancel()
	}

	if err := fn(ctx); err != nil {
		s.logger.Err(err).Str("func", "*server.shutdown").Str("step", name).Msg("shutdown step failed")
		return fmt.Errorf("shutdown %s: %w", name, err)
	}

	s.logger.Info().Str("step", name).Msg("stopped")
	return nil
}
