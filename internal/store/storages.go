// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/glory-keeper/internal/config"
	"github.com/MKhiriev/glory-keeper/internal/crypto"
	"github.com/MKhiriev/glory-keeper/internal/logger"
)

// Storages bundles the stores of the daemon and the connection they share.
type Storages struct {
	Accounts AccountStore

	db *DB
}

// NewStorages opens the backend selected by cfg.DB.Driver, applies the
// migrations for SQL backends and constructs the account store.
func NewStorages(ctx context.Context, cfg config.Storage, sealer crypto.CredentialSealer, ids IDGenerator, log *logger.Logger) (*Storages, error) {
	var (
		db  *DB
		err error
	)

	switch cfg.DB.Driver {
	case config.DriverMemory, "":
		log.Warn().Msg("using in-memory account store; data is lost on exit")
		return &Storages{Accounts: NewMemoryAccountStore(ids)}, nil
	case config.DriverPostgres:
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
	case config.DriverSQLite:
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.DB.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		_ = db.Close()
		return nil, err
	}

	return &Storages{
		Accounts: NewAccountRepository(db, sealer, ids, log),
		db:       db,
	}, nil
}

// Ping checks that the database answers. The in-memory backend is always
// reachable.
func (s *Storages) Ping(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return s.db.PingContext(ctx)
}

// Close releases the database connection, if any.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
