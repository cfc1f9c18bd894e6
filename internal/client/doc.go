// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client is the HTTP client of the glory-keeper API used by the
// gloryctl command. Every method maps to one API route and decodes either
// the result or the {"kind","message"} error body into an [*APIError].
package client
