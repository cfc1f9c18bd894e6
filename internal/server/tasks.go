// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"

	"github.com/MKhiriev/glory-keeper/internal/config"
	"github.com/MKhiriev/glory-keeper/internal/service"
	"github.com/MKhiriev/glory-keeper/internal/workers"
)

// Names of the periodic tasks, as they appear in logs.
const (
	TaskHealthCheck = "health-check"
	TaskAutoSave    = "auto-save"
	TaskSync        = "sync"
	TaskStats       = "stats"
)

// NewTasks returns the four periodic tasks of the daemon.
func NewTasks(services *service.Services, cfg config.Workers) []workers.Task {
	return []workers.Task{
		workers.Every(TaskHealthCheck, cfg.HealthCheckInterval, services.Farming.HealthCheckTick),
		workers.Every(TaskAutoSave, cfg.AutoSaveInterval, services.AutoSave.Save),
		workers.Every(TaskSync, cfg.SyncInterval, func(ctx context.Context) error {
			_, err := services.Sync.Reconcile(ctx)
			return err
		}),
		workers.Every(TaskStats, cfg.StatsInterval, services.Stats.Refresh),
	}
}
