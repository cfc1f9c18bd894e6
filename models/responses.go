// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	// Kind is the machine-readable error discriminator, e.g. "not_found".
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// StatsResponse is returned by GET /api/stats. ActiveCount and TodayGlory
// are computed on request, Snapshot is the last periodic refresh.
type StatsResponse struct {
	ActiveCount   int   `json:"active_count"`
	TodayGlory    int64 `json:"today_glory"`
	ActiveWorkers int   `json:"active_workers"`
	Snapshot      Stats `json:"snapshot"`
}

// Values of [HealthResponse] Status and Storage.
const (
	HealthOK           = "ok"
	HealthDegraded     = "degraded"
	StorageOK          = "ok"
	StorageUnreachable = "unreachable"
)

// HealthResponse is returned by GET /health. Status is "ok" only while the
// storage answers.
type HealthResponse struct {
	Status        string    `json:"status"`
	Time          time.Time `json:"time"`
	UptimeSeconds int64     `json:"uptime_seconds"`
	Storage       string    `json:"storage"`
}
