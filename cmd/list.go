package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"invoicegen/internal/config"
	"invoicegen/internal/tracker"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all issued invoices",
	Long: `Print the invoice ledger: every invoice ever issued, in issue order,
with its number, client, amount, issue date and rendered file path.`,
	Example: `  invoicegen list`,
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	store, err := tracker.NewStore(cfg.TrackerFile)
	if err != nil {
		return fmt.Errorf("failed to open invoice tracker: %w", err)
	}

	records, err := store.Records()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(out, "No invoices issued yet.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NUMBER\tCLIENT\tAMOUNT\tDATE\tFILE")
	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%s\t%s%s\t%s\t%s\n",
			rec.InvoiceNumber, rec.Client, cfg.CurrencySymbol, rec.Amount, rec.Date, rec.FilePath)
	}
	return w.Flush()
}
