// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/glory-keeper/models"
)

// FarmingService owns the account state machine and the per-account
// farming workers. It is the only writer of [models.Account.Status].
type FarmingService interface {
	Start(ctx context.Context, id string) (models.Account, error)
	Stop(ctx context.Context, id string) (models.Account, error)
	Reset(ctx context.Context, id string) (models.Account, error)
	Delete(ctx context.Context, id string) error
	StartAll(ctx context.Context) (models.StartAllResult, error)

	// HealthCheckTick demotes accounts whose worker died or stopped making
	// progress.
	HealthCheckTick(ctx context.Context) error

	// Recover reconciles stored statuses with running workers after a
	// process start.
	Recover(ctx context.Context) error

	// Shutdown cancels every worker and waits for them. Stored statuses
	// are left as they are.
	Shutdown(ctx context.Context) error

	ActiveWorkers() int
}

// Operation is the per-target action of a batch. An error counts as a failed
// outcome whose message is the error text.
type Operation func(ctx context.Context, acc models.Account) (success bool, message string, err error)

// BatchDispatcher runs one operation sequentially across targets.
type BatchDispatcher interface {
	Dispatch(ctx context.Context, op Operation, targets []models.Account, requestedCount int, interItemDelay time.Duration) (models.BatchResult, error)
}

// InviteService sends clan invitations from the active accounts.
type InviteService interface {
	DispatchInvites(ctx context.Context, req models.InviteRequest) (models.BatchResult, error)
}

// SyncService merges the remote account snapshot into the local store.
type SyncService interface {
	Reconcile(ctx context.Context) (models.SyncReport, error)
	LastSyncAt() *time.Time
}

// AutoSaveService pushes the local snapshot to the remote gateway.
type AutoSaveService interface {
	Save(ctx context.Context) error
}

type StatsService interface {
	ActiveCount(ctx context.Context) (int, error)
	TodayGlory(ctx context.Context) (int64, error)
	Refresh(ctx context.Context) error
	Snapshot() models.Stats
}

type AccountService interface {
	Add(ctx context.Context, acc models.NewAccount) (models.Account, error)
	Get(ctx context.Context, id string) (models.Account, error)
	List(ctx context.Context) ([]models.Account, error)
	Update(ctx context.Context, id, clanRef string) (models.Account, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) models.AppBuildInfo
	Health(ctx context.Context) models.HealthResponse
}

// StoragePinger checks that the account storage answers.
type StoragePinger interface {
	Ping(ctx context.Context) error
}
