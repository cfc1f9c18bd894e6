// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/MKhiriev/glory-keeper/models"
)

// Field names accepted by [AccountValidator].
const (
	FieldID          = "id"
	FieldExternalUID = "uid"
	FieldCredential  = "token"
	FieldType        = "type"
	FieldClanRef     = "clan_ref"
	FieldCount       = "count"
	FieldDelay       = "delay"
)

const (
	MinExternalUIDDigits = 9
	MinCredentialLength  = 10
	MaxClanRefLength     = 64
)

var allowedAccountTypes = []models.AccountType{
	models.AccountTypeGuest,
	models.AccountTypeFacebook,
	models.AccountTypeGoogle,
}

// AccountValidator validates account creation input and batch invite
// requests. An empty account type is accepted; the store defaults it.
type AccountValidator struct {
	maxBatchCount int
}

// NewAccountValidator returns the validator. maxBatchCount bounds
// [models.InviteRequest.Count].
func NewAccountValidator(maxBatchCount int) Validator {
	return &AccountValidator{maxBatchCount: maxBatchCount}
}

func (v *AccountValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.NewAccount:
		return v.validateNewAccount(ctx, value, fields...)
	case *models.NewAccount:
		return v.validateNewAccount(ctx, *value, fields...)

	case models.InviteRequest:
		return v.validateInviteRequest(ctx, value, fields...)
	case *models.InviteRequest:
		return v.validateInviteRequest(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *AccountValidator) validateNewAccount(_ context.Context, acc models.NewAccount, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldExternalUID, FieldCredential, FieldType, FieldClanRef}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if strings.TrimSpace(acc.ID) == "" {
				return ErrInvalidID
			}
		case FieldExternalUID:
			if !isDigits(acc.ExternalUID) || len(acc.ExternalUID) < MinExternalUIDDigits {
				return ErrInvalidExternalUID
			}
		case FieldCredential:
			if len(strings.TrimSpace(acc.Credential)) < MinCredentialLength {
				return ErrInvalidCredential
			}
		case FieldType:
			if acc.Type != "" && !slices.Contains(allowedAccountTypes, acc.Type) {
				return fmt.Errorf("%w: %q", ErrInvalidAccountType, acc.Type)
			}
		case FieldClanRef:
			if len(acc.ClanRef) > MaxClanRefLength {
				return ErrInvalidClanRef
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AccountValidator) validateInviteRequest(_ context.Context, req models.InviteRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldClanRef, FieldCount, FieldDelay}
	}

	for _, f := range fields {
		switch f {
		case FieldClanRef:
			ref := strings.TrimSpace(req.ClanRef)
			if ref == "" || len(ref) > MaxClanRefLength {
				return ErrInvalidClanRef
			}
		case FieldCount:
			if req.Count < 1 || (v.maxBatchCount > 0 && req.Count > v.maxBatchCount) {
				return fmt.Errorf("%w: must be between 1 and %d", ErrInvalidCount, v.maxBatchCount)
			}
		case FieldDelay:
			if req.Delay < 0 {
				return ErrInvalidDelay
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) || r > unicode.MaxASCII {
			return false
		}
	}
	return true
}
