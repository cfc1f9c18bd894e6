// Package config loads, merges, defaults and validates configuration.
//
// The daemon configuration is assembled from several sources in the
// following priority order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The entry points are [GetStructuredConfig] for the daemon and
// [GetClientConfig] for gloryctl.
package config
