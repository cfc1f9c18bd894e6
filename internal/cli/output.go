// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/MKhiriev/glory-keeper/models"
)

func (a *app) printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// print writes v as JSON, or calls table when the table format is selected.
func (a *app) print(w io.Writer, v any, table func(w io.Writer) error) error {
	if a.output == "json" {
		return a.printJSON(w, v)
	}
	return table(w)
}

func accountsTable(w io.Writer, accounts ...models.Account) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUID\tTYPE\tSTATUS\tCLAN\tGLORY\tTODAY\tLAST ACTIVE")
	for _, acc := range accounts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			acc.ID, acc.ExternalUID, dash(string(acc.Type)), acc.Status, dash(acc.ClanRef),
			acc.GloryTotal, acc.GloryToday, formatTime(acc.LastActiveAt))
	}
	return tw.Flush()
}

func batchTable(w io.Writer, res models.BatchResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ACCOUNT\tUID\tOK\tMESSAGE")
	for _, o := range res.Outcomes {
		fmt.Fprintf(tw, "%s\t%s\t%t\t%s\n", o.AccountID, o.ExternalUID, o.Success, dash(o.Message))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if ratio, ok := res.SuccessRatio(); ok {
		_, err := fmt.Fprintf(w, "batch %s: %d/%d succeeded (%.0f%%)\n", res.ID, res.Successes, len(res.Outcomes), ratio*100)
		return err
	}
	_, err := fmt.Fprintf(w, "batch %s: nothing dispatched\n", res.ID)
	return err
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Local().Format(time.DateTime)
}
