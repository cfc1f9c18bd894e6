// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidExternalUID = errors.New("uid must contain at least 9 digits and nothing else")
	ErrInvalidCredential  = errors.New("token must be at least 10 characters long")
	ErrInvalidAccountType = errors.New("unknown account type")
	ErrInvalidClanRef     = errors.New("invalid clan reference")
	ErrInvalidID          = errors.New("invalid account id")
	ErrInvalidCount       = errors.New("count is out of range")
	ErrInvalidDelay       = errors.New("delay cannot be negative")
)
