// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/glory-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/account_store_mock.go -package=mock

// AccountStore is the persistence contract for account records.
//
// Implementations must be safe for concurrent use. Callers that need
// read-modify-write consistency for one account serialize through the
// per-account lock of the service layer; the store itself only guarantees
// that each call is atomic and that glory increments are never lost.
type AccountStore interface {
	// Get returns the account with the given ID or [ErrAccountNotFound].
	Get(ctx context.Context, id string) (models.Account, error)

	// List returns every account in creation order.
	List(ctx context.Context) ([]models.Account, error)

	// Create inserts a new record in status inactive. When acc.ID is empty
	// a UUIDv7 is assigned; when acc.CreatedAt is zero the current time is
	// used. Returns [ErrAccountExists] if the ID or ExternalUID is taken.
	Create(ctx context.Context, acc models.NewAccount) (models.Account, error)

	// Update applies a partial update and returns the resulting record, or
	// [ErrAccountNotFound]. Glory fields change only by non-negative
	// increments.
	Update(ctx context.Context, id string, upd models.AccountUpdate) (models.Account, error)

	// Delete removes the record or returns [ErrAccountNotFound].
	Delete(ctx context.Context, id string) error
}

// ErrorClassificator decides whether a failed database call may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// IDGenerator produces identifiers for new records.
type IDGenerator interface {
	Generate() string
}
