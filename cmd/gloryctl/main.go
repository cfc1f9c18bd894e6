// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/glory-keeper/internal/cli"
	"github.com/MKhiriev/glory-keeper/internal/client"
	"github.com/MKhiriev/glory-keeper/internal/config"
	"github.com/MKhiriev/glory-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	cfg, err := config.GetClientConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error getting configs:", err)
		os.Exit(cli.ExitFailure)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = cli.NewRootCommand(*cfg, build, nil).ExecuteContext(ctx)
	stop()

	if err != nil {
		if kind := client.KindOf(err); kind != "" {
			fmt.Fprintf(os.Stderr, "error (%s): %v\n", kind, err)
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
	}
	os.Exit(cli.ExitCode(err))
}
