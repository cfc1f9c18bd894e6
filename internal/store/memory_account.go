// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/glory-keeper/models"
)

// MemoryAccountStore is an [AccountStore] kept in process memory. It is used
// for ephemeral runs (driver "memory") and by service tests. Records are
// returned by value so callers never share state with the store.
type MemoryAccountStore struct {
	mu       sync.RWMutex
	accounts map[string]models.Account
	order    []string
	ids      IDGenerator
	now      func() time.Time
}

// NewMemoryAccountStore constructs an empty in-memory store.
func NewMemoryAccountStore(ids IDGenerator) *MemoryAccountStore {
	return &MemoryAccountStore{
		accounts: make(map[string]models.Account),
		ids:      ids,
		now:      time.Now,
	}
}

func (s *MemoryAccountStore) Get(ctx context.Context, id string) (models.Account, error) {
	if err := ctx.Err(); err != nil {
		return models.Account{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[id]
	if !ok {
		return models.Account{}, fmt.Errorf("%w: %s", ErrAccountNotFound, id)
	}
	return clone(acc), nil
}

func (s *MemoryAccountStore) List(ctx context.Context) ([]models.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Account, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, clone(s.accounts[id]))
	}
	return out, nil
}

func (s *MemoryAccountStore) Create(ctx context.Context, na models.NewAccount) (models.Account, error) {
	if err := ctx.Err(); err != nil {
		return models.Account{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := na.ID
	if id == "" {
		id = s.ids.Generate()
	}
	if _, taken := s.accounts[id]; taken {
		return models.Account{}, fmt.Errorf("%w: id %s", ErrAccountExists, id)
	}
	for _, existing := range s.accounts {
		if existing.ExternalUID == na.ExternalUID {
			return models.Account{}, fmt.Errorf("%w: uid %s", ErrAccountExists, na.ExternalUID)
		}
	}

	acc := models.Account{
		ID:           id,
		ExternalUID:  na.ExternalUID,
		Credential:   na.Credential,
		ClanRef:      na.ClanRef,
		Type:         na.Type,
		Status:       models.StatusInactive,
		GloryTotal:   max(na.GloryTotal, 0),
		GloryToday:   max(na.GloryToday, 0),
		CreatedAt:    na.CreatedAt,
		LastActiveAt: utcPtr(na.LastActiveAt),
	}
	if acc.Type == "" {
		acc.Type = models.AccountTypeGuest
	}
	if acc.CreatedAt.IsZero() {
		acc.CreatedAt = s.now()
	}
	acc.CreatedAt = acc.CreatedAt.UTC()

	s.accounts[id] = acc
	s.order = append(s.order, id)

	return clone(acc), nil
}

func (s *MemoryAccountStore) Update(ctx context.Context, id string, upd models.AccountUpdate) (models.Account, error) {
	if err := ctx.Err(); err != nil {
		return models.Account{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[id]
	if !ok {
		return models.Account{}, fmt.Errorf("%w: %s", ErrAccountNotFound, id)
	}

	acc = upd.Apply(acc)
	s.accounts[id] = acc

	return clone(acc), nil
}

func (s *MemoryAccountStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[id]; !ok {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, id)
	}

	delete(s.accounts, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	return nil
}

func clone(acc models.Account) models.Account {
	acc.LastActiveAt = utcPtr(acc.LastActiveAt)
	return acc
}
