package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"invoicegen/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "invoicegen",
	Short: "Invoicegen - generate PDF invoices from the command line",
	Long: `Invoicegen is a command-line tool for freelancers and small businesses.

It generates professional PDF invoices with sequential invoice numbers,
keeps a ledger of every invoice issued, and remembers client contacts
for reuse. All state lives in local JSON files; nothing leaves your
machine.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Welcome to Invoicegen!")
		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}
