// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned when a configuration group is incomplete or
// inconsistent.
var (
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	ErrInvalidAppConfigs     = errors.New("invalid app configuration")
	ErrInvalidFarmingConfigs = errors.New("invalid farming configuration")
	ErrInvalidBatchConfigs   = errors.New("invalid batch configuration")
	ErrInvalidClientConfigs  = errors.New("invalid client configuration")
)
