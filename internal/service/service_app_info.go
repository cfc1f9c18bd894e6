// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/glory-keeper/internal/config"
	"github.com/MKhiriev/glory-keeper/internal/logger"
	"github.com/MKhiriev/glory-keeper/models"
)

const healthPingTimeout = 2 * time.Second

type appInfoService struct {
	build   models.AppBuildInfo
	storage StoragePinger
	clock   clockwork.Clock
	started time.Time

	logger *logger.Logger
}

// NewAppInfoService reports build and daemon health. A configured App.Version
// overrides the linker-provided version. A nil storage counts as reachable.
func NewAppInfoService(
	cfg config.App,
	build models.AppBuildInfo,
	storage StoragePinger,
	clock clockwork.Clock,
	logger *logger.Logger,
) (AppInfoService, error) {
	if cfg.Version != "" {
		build.Version = cfg.Version
	}
	if build.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		build:   build,
		storage: storage,
		clock:   clock,
		started: clock.Now(),
		logger:  logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) models.AppBuildInfo {
	return s.build
}

func (s *appInfoService) Health(ctx context.Context) models.HealthResponse {
	now := s.clock.Now()
	resp := models.HealthResponse{
		Status:        models.HealthOK,
		Time:          now.UTC(),
		UptimeSeconds: int64(now.Sub(s.started) / time.Second),
		Storage:       models.StorageOK,
	}
	if s.storage == nil {
		return resp
	}

	ctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()
	if err := s.storage.Ping(ctx); err != nil {
		s.logger.Err(err).Str("func", "*appInfoService.Health").Msg("storage ping failed")
		resp.Status = models.HealthDegraded
		resp.Storage = models.StorageUnreachable
	}
	return resp
}
