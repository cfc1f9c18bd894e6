// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client of the remote gateway that fronts the
// third-party service the managed accounts belong to.
//
// The primary abstraction is [RemoteClient], which decouples the service
// layer from the transport. The package ships an HTTP/JSON implementation
// ([NewHTTPRemoteClient]) built on resty. Every failure of a remote call
// wraps [ErrNetwork] so callers can use [errors.Is] without caring about the
// transport.
package adapter

import (
	"context"

	"github.com/MKhiriev/glory-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_client_mock.go -package=mock

// RemoteClient is the outbound contract with the remote gateway.
type RemoteClient interface {
	// ProbeStatus asks the gateway for the farming state of acc. Alive is
	// false when the remote session has ended.
	ProbeStatus(ctx context.Context, acc models.Account) (models.ProbeResult, error)

	// SendInvite sends one clan invitation on behalf of acc. A rejected
	// invitation is reported through InviteResult.Success, not as an error.
	SendInvite(ctx context.Context, acc models.Account, clanRef string) (models.InviteResult, error)

	// FetchSnapshot returns the authoritative remote copy of every account.
	FetchSnapshot(ctx context.Context) ([]models.Account, error)

	// PushSnapshot uploads the local copy of every account.
	PushSnapshot(ctx context.Context, accounts []models.Account) error
}
