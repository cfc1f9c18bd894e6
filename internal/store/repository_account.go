// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/glory-keeper/internal/crypto"
	"github.com/MKhiriev/glory-keeper/internal/logger"
	"github.com/MKhiriev/glory-keeper/models"
)

const accountsTable = "accounts"

var accountColumns = []string{
	"id",
	"external_uid",
	"credential",
	"clan_ref",
	"type",
	"status",
	"glory_total",
	"glory_today",
	"created_at",
	"last_active_at",
}

// accountRepository is the SQL implementation of [AccountStore]. Queries are
// built with squirrel so the same code serves PostgreSQL ($n placeholders)
// and SQLite (? placeholders). Credentials are sealed before they are
// written and opened after they are read.
type accountRepository struct {
	db     *DB
	sealer crypto.CredentialSealer
	ids    IDGenerator
	now    func() time.Time
	logger *logger.Logger
}

// NewAccountRepository constructs an [AccountStore] on top of db.
func NewAccountRepository(db *DB, sealer crypto.CredentialSealer, ids IDGenerator, log *logger.Logger) AccountStore {
	log.Debug().Str("dialect", db.dialect).Msg("creating account repository")
	return &accountRepository{
		db:     db,
		sealer: sealer,
		ids:    ids,
		now:    time.Now,
		logger: log,
	}
}

func (r *accountRepository) Get(ctx context.Context, id string) (models.Account, error) {
	query, args, err := r.db.builder.
		Select(accountColumns...).
		From(accountsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var acc models.Account
	err = r.db.withRetry(ctx, func() error {
		return r.db.QueryRowxContext(ctx, query, args...).StructScan(&acc)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Account{}, fmt.Errorf("%w: %s", ErrAccountNotFound, id)
	}
	if err != nil {
		r.logger.Err(err).Str("func", "*accountRepository.Get").Str("account_id", id).Msg("error selecting account")
		return models.Account{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return r.open(acc)
}

func (r *accountRepository) List(ctx context.Context) ([]models.Account, error) {
	query, args, err := r.db.builder.
		Select(accountColumns...).
		From(accountsTable).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var rows []models.Account
	err = r.db.withRetry(ctx, func() error {
		rows = rows[:0]
		return r.db.SelectContext(ctx, &rows, query, args...)
	})
	if err != nil {
		r.logger.Err(err).Str("func", "*accountRepository.List").Msg("error listing accounts")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	accounts := make([]models.Account, 0, len(rows))
	for _, row := range rows {
		acc, err := r.open(row)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, acc)
	}

	return accounts, nil
}

func (r *accountRepository) Create(ctx context.Context, na models.NewAccount) (models.Account, error) {
	acc := models.Account{
		ID:           na.ID,
		ExternalUID:  na.ExternalUID,
		Credential:   na.Credential,
		ClanRef:      na.ClanRef,
		Type:         na.Type,
		Status:       models.StatusInactive,
		GloryTotal:   max(na.GloryTotal, 0),
		GloryToday:   max(na.GloryToday, 0),
		CreatedAt:    na.CreatedAt.UTC(),
		LastActiveAt: utcPtr(na.LastActiveAt),
	}
	if acc.ID == "" {
		acc.ID = r.ids.Generate()
	}
	if acc.Type == "" {
		acc.Type = models.AccountTypeGuest
	}
	if na.CreatedAt.IsZero() {
		acc.CreatedAt = r.now().UTC()
	}

	sealed, err := r.sealer.Seal(acc.Credential)
	if err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrCredential, err)
	}

	query, args, err := r.db.builder.
		Insert(accountsTable).
		Columns(accountColumns...).
		Values(
			acc.ID,
			acc.ExternalUID,
			sealed,
			acc.ClanRef,
			string(acc.Type),
			string(acc.Status),
			acc.GloryTotal,
			acc.GloryToday,
			acc.CreatedAt,
			acc.LastActiveAt,
		).
		ToSql()
	if err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.withRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return models.Account{}, fmt.Errorf("%w: uid %s", ErrAccountExists, acc.ExternalUID)
		}
		r.logger.Err(err).Str("func", "*accountRepository.Create").Msg("error inserting account")
		return models.Account{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return acc, nil
}

func (r *accountRepository) Update(ctx context.Context, id string, upd models.AccountUpdate) (models.Account, error) {
	upd.AddGloryTotal = max(upd.AddGloryTotal, 0)
	upd.AddGloryToday = max(upd.AddGloryToday, 0)
	if upd.IsEmpty() {
		return r.Get(ctx, id)
	}

	query, args, err := r.buildUpdateQuery(id, upd)
	if err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	selectQuery, selectArgs, err := r.db.builder.
		Select(accountColumns...).
		From(accountsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var acc models.Account
	err = r.db.withRetry(ctx, func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback()

		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return sql.ErrNoRows
		}

		if err = tx.QueryRowxContext(ctx, selectQuery, selectArgs...).StructScan(&acc); err != nil {
			return err
		}
		return tx.Commit()
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Account{}, fmt.Errorf("%w: %s", ErrAccountNotFound, id)
	}
	if err != nil {
		r.logger.Err(err).Str("func", "*accountRepository.Update").Str("account_id", id).Msg("error updating account")
		return models.Account{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return r.open(acc)
}

// buildUpdateQuery renders upd as a single UPDATE statement. Glory columns
// are incremented in SQL so concurrent writers add up.
func (r *accountRepository) buildUpdateQuery(id string, upd models.AccountUpdate) (string, []any, error) {
	b := r.db.builder.Update(accountsTable)

	if upd.Status != nil {
		b = b.Set("status", string(*upd.Status))
	}
	if upd.ClanRef != nil {
		b = b.Set("clan_ref", *upd.ClanRef)
	}
	if upd.LastActiveAt != nil {
		b = b.Set("last_active_at", upd.LastActiveAt.UTC())
	}

	switch {
	case upd.ResetGloryToday:
		b = b.Set("glory_today", upd.AddGloryToday)
	case upd.AddGloryToday > 0:
		b = b.Set("glory_today", sq.Expr("glory_today + ?", upd.AddGloryToday))
	}

	if upd.AddGloryTotal > 0 {
		b = b.Set("glory_total", sq.Expr("glory_total + ?", upd.AddGloryTotal))
	}

	return b.Where(sq.Eq{"id": id}).ToSql()
}

func (r *accountRepository) Delete(ctx context.Context, id string) error {
	query, args, err := r.db.builder.
		Delete(accountsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var res sql.Result
	err = r.db.withRetry(ctx, func() error {
		var err error
		res, err = r.db.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		r.logger.Err(err).Str("func", "*accountRepository.Delete").Str("account_id", id).Msg("error deleting account")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, id)
	}

	return nil
}

func (r *accountRepository) open(acc models.Account) (models.Account, error) {
	plain, err := r.sealer.Open(acc.Credential)
	if err != nil {
		r.logger.Err(err).Str("func", "*accountRepository.open").Str("account_id", acc.ID).Msg("error opening credential")
		return models.Account{}, fmt.Errorf("%w: %w", ErrCredential, err)
	}
	acc.Credential = plain
	return acc, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
