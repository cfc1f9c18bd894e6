// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"

	"github.com/MKhiriev/glory-keeper/internal/adapter"
	"github.com/MKhiriev/glory-keeper/internal/store"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrAlreadyActive       = errors.New("account is already active")
	ErrAlreadyInactive     = errors.New("account is already inactive")
	ErrAccountInError      = errors.New("account is in error state, reset it first")
	ErrNoEligibleTargets   = errors.New("no eligible targets")
	ErrAccountLimitReached = errors.New("account limit reached")
	ErrShuttingDown        = errors.New("farming is shutting down")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// ErrorKind is the discriminator reported to API clients together with the
// error message.
type ErrorKind string

const (
	KindValidation        ErrorKind = "validation"
	KindNotFound          ErrorKind = "not_found"
	KindAlreadyActive     ErrorKind = "already_active"
	KindAlreadyInactive   ErrorKind = "already_inactive"
	KindAccountInError    ErrorKind = "account_in_error"
	KindNetwork           ErrorKind = "network"
	KindNoEligibleTargets ErrorKind = "no_eligible_targets"
	KindInternal          ErrorKind = "internal"
)

// KindOf classifies err. It returns an empty kind for a nil error and
// [KindInternal] for anything it does not recognise.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, store.ErrAccountNotFound):
		return KindNotFound
	case errors.Is(err, ErrAlreadyActive):
		return KindAlreadyActive
	case errors.Is(err, ErrAlreadyInactive):
		return KindAlreadyInactive
	case errors.Is(err, ErrAccountInError):
		return KindAccountInError
	case errors.Is(err, adapter.ErrNetwork):
		return KindNetwork
	case errors.Is(err, ErrNoEligibleTargets):
		return KindNoEligibleTargets
	default:
		return KindInternal
	}
}
