// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notify

import (
	"context"

	"github.com/MKhiriev/glory-keeper/internal/logger"
	"github.com/MKhiriev/glory-keeper/models"
)

type logHandler struct {
	logger *logger.Logger
}

// NewLogHandler writes every event to the structured log. Error events are
// logged at warn level, the rest at info.
func NewLogHandler(log *logger.Logger) Handler {
	return &logHandler{logger: log.Component("events")}
}

func (l *logHandler) Name() string { return "log" }

func (l *logHandler) Handle(_ context.Context, event models.Event) error {
	e := l.logger.Info()
	if event.Kind == models.EventError {
		e = l.logger.Warn()
	}

	e.Str("kind", string(event.Kind)).
		Str("account_id", event.AccountID).
		Time("at", event.At).
		Msg(event.Message)

	return nil
}
