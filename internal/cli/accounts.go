// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/glory-keeper/models"
)

func (a *app) accountsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "accounts",
		Aliases: []string{"account", "acc"},
		Short:   "Manage accounts and their farming state",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all accounts",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				accounts, err := a.api.ListAccounts(cmd.Context())
				if err != nil {
					return err
				}
				return a.print(cmd.OutOrStdout(), accounts, func(w io.Writer) error {
					return accountsTable(w, accounts...)
				})
			},
		},
		a.addAccountCommand(),
		a.accountActionCommand("get", "Show one account", func(ctx context.Context, id string) (models.Account, error) {
			return a.api.GetAccount(ctx, id)
		}),
		a.accountActionCommand("start", "Start farming", func(ctx context.Context, id string) (models.Account, error) {
			return a.api.StartAccount(ctx, id)
		}),
		a.accountActionCommand("stop", "Stop farming", func(ctx context.Context, id string) (models.Account, error) {
			return a.api.StopAccount(ctx, id)
		}),
		a.accountActionCommand("reset", "Acknowledge an error and set the account inactive", func(ctx context.Context, id string) (models.Account, error) {
			return a.api.ResetAccount(ctx, id)
		}),
		a.updateAccountCommand(),
		&cobra.Command{
			Use:   "delete ID",
			Short: "Stop farming and remove an account",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.api.DeleteAccount(cmd.Context(), args[0]); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
				return err
			},
		},
	)

	return cmd
}

// accountActionCommand builds a command calling op with the account ID
// argument. op runs after connect, so it must read a.api lazily.
func (a *app) accountActionCommand(name, short string, op func(ctx context.Context, id string) (models.Account, error)) *cobra.Command {
	return &cobra.Command{
		Use:   name + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			acc, err := op(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), acc, func(w io.Writer) error {
				return accountsTable(w, acc)
			})
		},
	}
}

func (a *app) addAccountCommand() *cobra.Command {
	var na models.NewAccount
	var accountType string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			na.Type = models.AccountType(accountType)
			acc, err := a.api.AddAccount(cmd.Context(), na)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), acc, func(w io.Writer) error {
				return accountsTable(w, acc)
			})
		},
	}

	cmd.Flags().StringVar(&na.ExternalUID, "uid", "", "external account UID (digits)")
	cmd.Flags().StringVar(&na.Credential, "credential", "", "account credential")
	cmd.Flags().StringVar(&accountType, "type", "", "account type: guest, facebook or google")
	cmd.Flags().StringVar(&na.ClanRef, "clan", "", "clan reference")
	_ = cmd.MarkFlagRequired("uid")
	_ = cmd.MarkFlagRequired("credential")

	return cmd
}

func (a *app) updateAccountCommand() *cobra.Command {
	var clanRef string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change the clan reference of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			acc, err := a.api.UpdateAccount(cmd.Context(), args[0], clanRef)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), acc, func(w io.Writer) error {
				return accountsTable(w, acc)
			})
		},
	}

	cmd.Flags().StringVar(&clanRef, "clan", "", `clan reference; "" clears it`)
	_ = cmd.MarkFlagRequired("clan")

	return cmd
}
