// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"errors"

	"github.com/MKhiriev/glory-keeper/internal/client"
)

var errUnknownOutput = errors.New(`unknown output format, use "table" or "json"`)

// Exit codes of gloryctl.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUnreachable = 3
)

// ExitCode maps a command error to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, client.ErrUnreachable):
		return ExitUnreachable
	default:
		return ExitFailure
	}
}
