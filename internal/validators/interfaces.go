// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators holds the input rules of the service layer.
//
// A [Validator] checks a value and optionally restricts the check to a set
// of named fields. Validation runs before any write, so a rejected input
// never reaches the store or the remote gateway.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {
	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
