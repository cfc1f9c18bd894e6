// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notify

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/glory-keeper/internal/logger"
	"github.com/MKhiriev/glory-keeper/models"
)

// Dispatcher is the asynchronous [Sink] used by the daemon.
type Dispatcher struct {
	handlers []Handler
	timeout  time.Duration
	logger   *logger.Logger

	queue   chan models.Event
	done    chan struct{}
	dropped atomic.Int64

	mu     sync.RWMutex
	closed bool
	once   sync.Once
}

// NewDispatcher starts the delivery goroutine. bufferSize bounds the queue;
// timeout bounds every single Handle call.
func NewDispatcher(bufferSize int, timeout time.Duration, log *logger.Logger, handlers ...Handler) *Dispatcher {
	if bufferSize <= 0 {
		bufferSize = 1
	}

	d := &Dispatcher{
		handlers: handlers,
		timeout:  timeout,
		logger:   log.Component("notify"),
		queue:    make(chan models.Event, bufferSize),
		done:     make(chan struct{}),
	}
	go d.run()

	return d
}

// Notify enqueues event. A zero At is set to the current time. Events sent
// after Close, or while the queue is full, are dropped.
func (d *Dispatcher) Notify(event models.Event) {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return
	}

	select {
	case d.queue <- event:
	default:
		d.dropped.Add(1)
		d.logger.Warn().
			Str("kind", string(event.Kind)).
			Str("account_id", event.AccountID).
			Msg("notification queue full, event dropped")
	}
}

// Dropped returns the number of events lost to a full queue.
func (d *Dispatcher) Dropped() int64 {
	return d.dropped.Load()
}

// Close stops accepting events and waits until the queued ones have been
// delivered, or until ctx is done.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.once.Do(func() {
		d.mu.Lock()
		d.closed = true
		close(d.queue)
		d.mu.Unlock()
	})

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)

	for event := range d.queue {
		for _, h := range d.handlers {
			d.deliver(h, event)
		}
	}
}

func (d *Dispatcher) deliver(h Handler, event models.Event) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error().Str("handler", h.Name()).Interface("panic", r).Msg("notification handler panicked")
		}
	}()

	ctx := context.Background()
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	if err := h.Handle(ctx, event); err != nil {
		d.logger.Err(err).
			Str("func", "Dispatcher.deliver").
			Str("handler", h.Name()).
			Str("kind", string(event.Kind)).
			Msg("notification delivery failed")
	}
}
