// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// EventKind names a lifecycle event delivered to notification sinks.
type EventKind string

const (
	EventStarted        EventKind = "started"
	EventStopped        EventKind = "stopped"
	EventBatchCompleted EventKind = "batchCompleted"
	EventSyncCompleted  EventKind = "syncCompleted"
	EventError          EventKind = "error"
)

// Event is a short, human-readable lifecycle notification.
type Event struct {
	Kind      EventKind `json:"kind"`
	AccountID string    `json:"account_id,omitempty"`
	Message   string    `json:"message"`
	At        time.Time `json:"at"`
}
