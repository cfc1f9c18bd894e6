// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"github.com/spf13/cobra"

	"github.com/MKhiriev/glory-keeper/internal/client"
	"github.com/MKhiriev/glory-keeper/internal/config"
	"github.com/MKhiriev/glory-keeper/internal/logger"
	"github.com/MKhiriev/glory-keeper/models"
)

// ClientFactory builds the API client once flags are parsed.
type ClientFactory func(cfg config.ClientConfig, log *logger.Logger) (client.Client, error)

type app struct {
	cfg     config.ClientConfig
	build   models.AppBuildInfo
	factory ClientFactory

	// output is "table" or "json"
	output string

	api    client.Client
	logger *logger.Logger
}

// NewRootCommand returns the gloryctl command. Defaults come from base,
// usually loaded with [config.GetClientConfig]; flags override them.
func NewRootCommand(base config.ClientConfig, build models.AppBuildInfo, factory ClientFactory) *cobra.Command {
	if factory == nil {
		factory = client.NewAPIClient
	}
	a := &app{cfg: base, build: build, factory: factory}

	root := &cobra.Command{
		Use:           "gloryctl",
		Short:         "Control a glory-keeper daemon",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.connect()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfg.ServerURL, "server", a.cfg.ServerURL, "daemon base URL")
	flags.StringVar(&a.cfg.Token, "token", a.cfg.Token, "bearer token")
	flags.DurationVar(&a.cfg.Timeout, "timeout", a.cfg.Timeout, "request timeout")
	flags.BoolVarP(&a.cfg.Verbose, "verbose", "v", a.cfg.Verbose, "log requests to stderr")
	flags.StringVarP(&a.output, "output", "o", "table", `output format: "table" or "json"`)

	root.AddCommand(
		a.accountsCommand(),
		a.farmingCommand(),
		a.invitesCommand(),
		a.syncCommand(),
		a.statsCommand(),
		a.versionCommand(),
	)

	return root
}

func (a *app) connect() error {
	if a.output != "table" && a.output != "json" {
		return errUnknownOutput
	}

	a.logger = logger.NewCLILogger("gloryctl", a.cfg.Verbose)

	api, err := a.factory(a.cfg, a.logger)
	if err != nil {
		return err
	}
	a.api = api
	return nil
}
