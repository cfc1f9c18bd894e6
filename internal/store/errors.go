// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by [AccountStore] implementations. Callers should
// use [errors.Is] to match against these values.
var (
	// ErrAccountNotFound is returned when no record has the requested ID.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountExists is returned by Create when the ID or the external
	// UID is already used by another record.
	ErrAccountExists = errors.New("account already exists")
)

// Low-level database operation errors, wrapped around the driver error.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when running a statement fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when a result row cannot be mapped onto an
	// account.
	ErrScanningRow = errors.New("failed to scan account row")

	// ErrCredential is returned when a credential cannot be sealed or opened.
	ErrCredential = errors.New("credential sealing failed")
)
