// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/glory-keeper/internal/adapter"
	"github.com/MKhiriev/glory-keeper/internal/logger"
	"github.com/MKhiriev/glory-keeper/internal/store"
)

type autoSaver struct {
	accounts store.AccountStore
	remote   adapter.RemoteClient

	logger *logger.Logger
}

func NewAutoSaver(accounts store.AccountStore, remote adapter.RemoteClient, log *logger.Logger) AutoSaveService {
	return &autoSaver{
		accounts: accounts,
		remote:   remote,
		logger:   log.Component("autosave"),
	}
}

// Save uploads every local account to the remote gateway.
func (a *autoSaver) Save(ctx context.Context) error {
	accs, err := a.accounts.List(ctx)
	if err != nil {
		return fmt.Errorf("auto-save: %w", err)
	}

	if err = a.remote.PushSnapshot(ctx, accs); err != nil {
		return fmt.Errorf("auto-save: %w", err)
	}

	a.logger.Debug().Int("accounts", len(accs)).Msg("snapshot saved")
	return nil
}
