// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func (a *app) farmingCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "farming",
		Short: "Farming operations across all accounts",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "start-all",
		Short: "Start every account that is not farming yet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.api.StartAll(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), res, func(w io.Writer) error {
				fmt.Fprintf(w, "started %d account(s)\n", len(res.Started))
				for _, id := range res.Started {
					fmt.Fprintf(w, "  %s\n", id)
				}
				if len(res.Failed) == 0 {
					return nil
				}
				fmt.Fprintf(w, "failed %d account(s)\n", len(res.Failed))
				for _, f := range res.Failed {
					fmt.Fprintf(w, "  %s: %s\n", f.AccountID, f.Message)
				}
				return nil
			})
		},
	})

	return cmd
}
