// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package notify delivers lifecycle events to interested parties.
//
// Producers call [Sink.Notify], which never blocks and never fails. The
// [Dispatcher] queues events on a bounded channel and hands them to a list
// of [Handler] values from a single goroutine; when the queue is full the
// event is dropped with a warning.
package notify

import (
	"context"

	"github.com/MKhiriev/glory-keeper/models"
)

// Sink accepts lifecycle events. Notify must return immediately.
type Sink interface {
	Notify(event models.Event)
}

// Handler delivers one event to a destination. Errors are logged by the
// dispatcher and otherwise ignored.
type Handler interface {
	Name() string
	Handle(ctx context.Context, event models.Event) error
}

// Nop is a Sink that discards events.
type Nop struct{}

func (Nop) Notify(models.Event) {}
