// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the REST API of the glory-keeper daemon.
//
// Handlers are thin: they decode the request, call one core operation from
// [service.Services] and render the result or a {"kind","message"} error.
// Tracing, access logging, compression and optional bearer-token
// authentication are handled by middleware in this package.
package http
