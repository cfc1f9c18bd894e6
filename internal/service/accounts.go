// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/glory-keeper/internal/config"
	"github.com/MKhiriev/glory-keeper/internal/locks"
	"github.com/MKhiriev/glory-keeper/internal/logger"
	"github.com/MKhiriev/glory-keeper/internal/store"
	"github.com/MKhiriev/glory-keeper/internal/validators"
	"github.com/MKhiriev/glory-keeper/models"
)

type accountService struct {
	accounts  store.AccountStore
	farming   FarmingService
	validator validators.Validator
	locks     *locks.KeyedMutex

	maxAccounts int
	autoStart   bool

	logger *logger.Logger
}

func NewAccountService(
	accounts store.AccountStore,
	farming FarmingService,
	keyLocks *locks.KeyedMutex,
	appCfg config.App,
	farmingCfg config.Farming,
	batchCfg config.Batch,
	log *logger.Logger,
) AccountService {
	return &accountService{
		accounts:    accounts,
		farming:     farming,
		validator:   validators.NewAccountValidator(batchCfg.MaxCount),
		locks:       keyLocks,
		maxAccounts: appCfg.MaxAccounts,
		autoStart:   farmingCfg.AutoStart,
		logger:      log.Component("accounts"),
	}
}

// Add validates and stores a new inactive account. With auto-start enabled
// farming is started right away; a failure to start is logged and the
// inactive account is returned.
func (s *accountService) Add(ctx context.Context, na models.NewAccount) (models.Account, error) {
	na.ID = ""
	na.ExternalUID = strings.TrimSpace(na.ExternalUID)
	na.ClanRef = strings.TrimSpace(na.ClanRef)

	if err := s.validator.Validate(ctx, na); err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if s.maxAccounts > 0 {
		accs, err := s.accounts.List(ctx)
		if err != nil {
			return models.Account{}, fmt.Errorf("add account: %w", err)
		}
		if len(accs) >= s.maxAccounts {
			return models.Account{}, fmt.Errorf("%w: %w (%d)", ErrValidation, ErrAccountLimitReached, s.maxAccounts)
		}
	}

	acc, err := s.accounts.Create(ctx, na)
	if err != nil {
		if errors.Is(err, store.ErrAccountExists) {
			return models.Account{}, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		return models.Account{}, fmt.Errorf("add account: %w", err)
	}

	s.logger.Info().Str("account_id", acc.ID).Str("uid", acc.ExternalUID).Msg("account added")

	if !s.autoStart {
		return acc, nil
	}

	started, err := s.farming.Start(ctx, acc.ID)
	if err != nil {
		s.logger.Err(err).Str("func", "*accountService.Add").Str("account_id", acc.ID).Msg("auto-start failed")
		return acc, nil
	}
	return started, nil
}

func (s *accountService) Get(ctx context.Context, id string) (models.Account, error) {
	acc, err := s.accounts.Get(ctx, id)
	if err != nil {
		return models.Account{}, fmt.Errorf("get account: %w", err)
	}
	return acc, nil
}

func (s *accountService) List(ctx context.Context) ([]models.Account, error) {
	accs, err := s.accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accs, nil
}

// Update changes the clan reference of an account. An empty clanRef clears
// it. Status, external UID and credential are never touched here.
func (s *accountService) Update(ctx context.Context, id, clanRef string) (models.Account, error) {
	clanRef = strings.TrimSpace(clanRef)
	if err := s.validator.Validate(ctx, models.NewAccount{ClanRef: clanRef}, validators.FieldClanRef); err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	unlock, err := s.locks.Lock(ctx, id)
	if err != nil {
		return models.Account{}, err
	}
	defer unlock()

	acc, err := s.accounts.Update(ctx, id, models.AccountUpdate{ClanRef: &clanRef})
	if err != nil {
		return models.Account{}, fmt.Errorf("update account: %w", err)
	}

	s.logger.Info().Str("account_id", acc.ID).Str("clan_ref", acc.ClanRef).Msg("account updated")
	return acc, nil
}
