// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

var (
	// ErrNetwork is wrapped by every error a [RemoteClient] returns.
	ErrNetwork = errors.New("remote gateway unreachable")

	// ErrUnauthorized is returned alongside ErrNetwork when the gateway
	// rejects the API key (401 or 403).
	ErrUnauthorized = errors.New("remote gateway rejected credentials")

	// ErrBadRequest is returned alongside ErrNetwork when the gateway
	// rejects the request payload (4xx other than auth).
	ErrBadRequest = errors.New("remote gateway rejected request")

	// ErrBadResponse is returned alongside ErrNetwork when a 2xx response
	// body cannot be decoded.
	ErrBadResponse = errors.New("malformed remote gateway response")
)
