// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides small helpers shared across the daemon and the
// CLI: context keys, JSON responses, the resty client wrapper, bearer token
// parsing, HMAC signatures and ID generators.
package utils

import (
	"context"
)

// contextKey is a private type for context keys. Using a dedicated type
// prevents key collisions with other packages.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// SubjectCtxKey stores the "sub" claim of the verified bearer token.
var SubjectCtxKey = contextKey("subject")

// TraceIDCtxKey stores the trace ID assigned to an inbound request.
var TraceIDCtxKey = contextKey("traceID")

// GetSubjectFromContext returns the authenticated token subject, if any.
func GetSubjectFromContext(ctx context.Context) (string, bool) {
	sub, ok := ctx.Value(SubjectCtxKey).(string)
	return sub, ok
}

// GetTraceIDFromContext returns the request trace ID, if any.
func GetTraceIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(TraceIDCtxKey).(string)
	return id, ok && id != ""
}
