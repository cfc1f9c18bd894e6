// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	errNoHTTPServer      = errors.New("http server is not configured")
	errSchedulerNotStart = errors.New("scheduler did not start")
)
