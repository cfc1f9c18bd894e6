// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/glory-keeper/internal/adapter"
	"github.com/MKhiriev/glory-keeper/internal/config"
	"github.com/MKhiriev/glory-keeper/internal/locks"
	"github.com/MKhiriev/glory-keeper/internal/logger"
	"github.com/MKhiriev/glory-keeper/internal/notify"
	"github.com/MKhiriev/glory-keeper/internal/store"
	"github.com/MKhiriev/glory-keeper/internal/utils"
	"github.com/MKhiriev/glory-keeper/models"
)

// Services is the public contract of the core, shared by the HTTP handler
// and the scheduler.
type Services struct {
	Accounts AccountService
	Farming  FarmingService
	Invites  InviteService
	Sync     SyncService
	AutoSave AutoSaveService
	Stats    StatsService
	AppInfo  AppInfoService
}

func NewServices(
	storages *store.Storages,
	remote adapter.RemoteClient,
	sink notify.Sink,
	clock clockwork.Clock,
	build models.AppBuildInfo,
	cfg config.StructuredConfig,
	logger *logger.Logger,
) (*Services, error) {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if sink == nil {
		sink = notify.Nop{}
	}

	appInfo, err := NewAppInfoService(cfg.App, build, storages, clock, logger)
	if err != nil {
		return nil, err
	}

	keyLocks := locks.NewKeyedMutex()

	farming := NewFarmingService(storages.Accounts, remote, sink, keyLocks, clock, cfg.Farming, logger)
	dispatcher := NewBatchDispatcher(clock, utils.NewKSUIDGenerator(), logger)
	syncService := NewSyncReconciler(storages.Accounts, remote, sink, keyLocks, clock, logger)

	return &Services{
		Accounts: NewAccountService(storages.Accounts, farming, keyLocks, cfg.App, cfg.Farming, cfg.Batch, logger),
		Farming:  farming,
		Invites:  NewInviteService(storages.Accounts, remote, dispatcher, sink, clock, cfg.Batch, logger),
		Sync:     syncService,
		AutoSave: NewAutoSaver(storages.Accounts, remote, logger),
		Stats:    NewStatsService(storages.Accounts, syncService, keyLocks, clock, logger),
		AppInfo:  appInfo,
	}, nil
}
