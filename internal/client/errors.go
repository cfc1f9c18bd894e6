// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"errors"
	"fmt"
)

// ErrUnreachable wraps transport failures: the daemon could not be reached
// or the connection broke before a response arrived.
var ErrUnreachable = errors.New("glory-keeper daemon unreachable")

// APIError is a non-2xx answer of the daemon.
type APIError struct {
	Status  int
	Kind    string
	Message string
}

func (e *APIError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// KindOf returns the error kind reported by the daemon, or "" when err is
// not an [*APIError].
func KindOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}
