// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/glory-keeper/internal/logger"
	"github.com/MKhiriev/glory-keeper/migrations"
)

// retry policy for errors classified as [Retryable].
const (
	maxAttempts  = 3
	retryBackoff = 50 * time.Millisecond
)

// DB is an open SQL connection together with the dialect-specific pieces the
// account repository needs: the goose dialect, the squirrel placeholder
// format and the driver error classifier.
type DB struct {
	*sqlx.DB
	dialect            string
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func newDB(conn *sqlx.DB, dialect string, placeholder sq.PlaceholderFormat, classifier ErrorClassificator, log *logger.Logger) *DB {
	return &DB{
		DB:                 conn,
		dialect:            dialect,
		builder:            sq.StatementBuilder.PlaceholderFormat(placeholder),
		errorClassificator: classifier,
		logger:             log,
	}
}

// Migrate applies the embedded schema for the connection's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB.DB, db.dialect)
}

// withRetry runs fn until it succeeds, fails with an error that is not
// retryable, the attempts are used up or ctx is done.
func (db *DB) withRetry(ctx context.Context, fn func() error) error {
	attempt := 0
	backoff := retry.WithMaxRetries(maxAttempts-1, retry.NewExponential(retryBackoff))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := fn()
		if err == nil || db.errorClassificator == nil || db.errorClassificator.Classify(err) != Retryable {
			return err
		}

		db.logger.Warn().Err(err).Int("attempt", attempt).Msg("retryable database error")
		return retry.RetryableError(err)
	})
}
