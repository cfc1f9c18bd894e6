// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/glory-keeper/internal/adapter"
	"github.com/MKhiriev/glory-keeper/internal/config"
	"github.com/MKhiriev/glory-keeper/internal/crypto"
	"github.com/MKhiriev/glory-keeper/internal/handler"
	"github.com/MKhiriev/glory-keeper/internal/logger"
	"github.com/MKhiriev/glory-keeper/internal/notify"
	"github.com/MKhiriev/glory-keeper/internal/server"
	"github.com/MKhiriev/glory-keeper/internal/service"
	"github.com/MKhiriev/glory-keeper/internal/store"
	"github.com/MKhiriev/glory-keeper/internal/utils"
	"github.com/MKhiriev/glory-keeper/internal/workers"
	"github.com/MKhiriev/glory-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(build)

	log := logger.NewLogger("glory-keeper", "")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	log = logger.NewLogger("glory-keeper", cfg.App.LogLevel)

	log.Debug().
		Str("storage", cfg.Storage.DB.Driver).
		Str("remote", cfg.Adapter.BaseURL).
		Str("address", cfg.Server.HTTPAddress).
		Msg("received configs")

	ctx := context.Background()

	sealer, err := crypto.NewCredentialSealer(cfg.App.CredentialKey)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating credential sealer")
	}

	storages, err := store.NewStorages(ctx, cfg.Storage, sealer, utils.NewUUIDGenerator(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	remote, err := adapter.NewHTTPRemoteClient(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating remote client")
	}

	notifyHandlers := []notify.Handler{notify.NewLogHandler(log)}
	if cfg.Notify.WebhookURL != "" {
		notifyHandlers = append(notifyHandlers, notify.NewWebhookHandler(cfg.Notify.WebhookURL, cfg.Notify.WebhookSecret, cfg.Notify.Timeout))
	}
	dispatcher := notify.NewDispatcher(cfg.Notify.BufferSize, cfg.Notify.Timeout, log, notifyHandlers...)

	clock := clockwork.NewRealClock()

	services, err := service.NewServices(storages, remote, dispatcher, clock, build, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	if err = services.Farming.Recover(ctx); err != nil {
		log.Err(err).Msg("error recovering farming state")
	}

	scheduler, err := workers.NewScheduler(clock, log, server.NewTasks(services, cfg.Workers)...)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating scheduler")
	}

	handlers, err := handler.NewHandlers(services, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, server.Components{
		Scheduler: scheduler,
		Farming:   services.Farming,
		Notifier:  server.ShutdownFunc(dispatcher.Close),
	}, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(ctx); err != nil {
		log.Err(err).Msg("server stopped with error")
	}
}

func printBuildInfo(build models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", build.Version)
	fmt.Printf("Build date: %s\n", build.Date)
	fmt.Printf("Build commit: %s\n", build.Commit)
}
