// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the fixed message strings written by the HTTP API
// into error bodies and logs.
package app

const (
	// MsgInvalidJSON is returned when a request body cannot be decoded.
	MsgInvalidJSON = "invalid JSON was passed"

	// MsgNoAccountID is returned when the {id} path parameter is empty.
	MsgNoAccountID = "no account ID provided"

	// MsgNoClanRef is returned when an account patch omits clan_ref.
	MsgNoClanRef = "clan_ref is required"

	// MsgInternalServerError replaces the text of errors of kind "internal"
	// so store and driver details never reach clients.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when a bearer token fails
	// signature, issuer or expiry checks.
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgServiceUnavailable is returned while the daemon is shutting down.
	MsgServiceUnavailable = "service is shutting down"
)
