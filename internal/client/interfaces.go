// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/glory-keeper/models"
)

// Client is the set of daemon operations available to gloryctl.
type Client interface {
	ListAccounts(ctx context.Context) ([]models.Account, error)
	AddAccount(ctx context.Context, acc models.NewAccount) (models.Account, error)
	GetAccount(ctx context.Context, id string) (models.Account, error)
	UpdateAccount(ctx context.Context, id, clanRef string) (models.Account, error)
	DeleteAccount(ctx context.Context, id string) error

	StartAccount(ctx context.Context, id string) (models.Account, error)
	StopAccount(ctx context.Context, id string) (models.Account, error)
	ResetAccount(ctx context.Context, id string) (models.Account, error)
	StartAll(ctx context.Context) (models.StartAllResult, error)

	SendInvites(ctx context.Context, body models.InviteBody) (models.BatchResult, error)
	Sync(ctx context.Context) (models.SyncReport, error)
	Stats(ctx context.Context) (models.StatsResponse, error)
	Version(ctx context.Context) (models.AppBuildInfo, error)
}
