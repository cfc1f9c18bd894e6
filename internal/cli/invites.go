// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/glory-keeper/models"
)

func (a *app) invitesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "invites",
		Aliases: []string{"invite"},
		Short:   "Clan invitation batches",
	}

	var (
		clan  string
		count int
		delay time.Duration
	)

	send := &cobra.Command{
		Use:   "send",
		Short: "Send a batch of clan invitations from active accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			body := models.InviteBody{ClanRef: clan, Count: count}
			if delay > 0 {
				body.DelayMS = delay.Milliseconds()
			}

			res, err := a.api.SendInvites(cmd.Context(), body)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), res, func(w io.Writer) error {
				return batchTable(w, res)
			})
		},
	}

	send.Flags().StringVar(&clan, "clan", "", "clan reference")
	send.Flags().IntVar(&count, "count", 0, "number of accounts to use, 0 for the daemon default")
	send.Flags().DurationVar(&delay, "delay", 0, "delay between invitations, 0 for the daemon default")
	_ = send.MarkFlagRequired("clan")

	cmd.AddCommand(send)
	return cmd
}
