// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/glory-keeper/models"
)

func (a *app) syncCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Reconcile local accounts with the remote service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := a.api.Sync(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), report, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "synced at %s: local %d, remote %d, imported %d, updated %d, unchanged %d\n",
					report.SyncedAt.Local().Format(time.DateTime),
					report.Local, report.Remote, report.Imported, report.Updated, report.Unchanged)
				return err
			})
		},
	}
}

func (a *app) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate farming statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := a.api.Stats(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), stats, func(w io.Writer) error {
				return statsTable(w, stats)
			})
		},
	}
}

func statsTable(w io.Writer, s models.StatsResponse) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "active accounts\t%d\n", s.ActiveCount)
	fmt.Fprintf(tw, "running workers\t%d\n", s.ActiveWorkers)
	fmt.Fprintf(tw, "glory today\t%d\n", s.TodayGlory)
	fmt.Fprintf(tw, "glory total\t%d\n", s.Snapshot.TotalGlory)
	fmt.Fprintf(tw, "accounts\t%d (%d inactive, %d error)\n",
		s.Snapshot.TotalAccounts, s.Snapshot.InactiveAccounts, s.Snapshot.ErrorAccounts)
	fmt.Fprintf(tw, "last sync\t%s\n", formatTime(s.Snapshot.LastSyncAt))
	return tw.Flush()
}

func (a *app) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print client and daemon build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			server, err := a.api.Version(cmd.Context())
			if err != nil {
				return err
			}

			versions := struct {
				Client models.AppBuildInfo `json:"client"`
				Server models.AppBuildInfo `json:"server"`
			}{a.build, server}

			return a.print(cmd.OutOrStdout(), versions, func(w io.Writer) error {
				tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "\tVERSION\tDATE\tCOMMIT")
				fmt.Fprintf(tw, "client\t%s\t%s\t%s\n", a.build.Version, a.build.Date, a.build.Commit)
				fmt.Fprintf(tw, "server\t%s\t%s\t%s\n", server.Version, server.Date, server.Commit)
				return tw.Flush()
			})
		},
	}
}
