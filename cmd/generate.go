package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"invoicegen/internal/config"
	"invoicegen/internal/contacts"
	"invoicegen/internal/logger"
	"invoicegen/internal/pdf"
	"invoicegen/internal/prompt"
	"invoicegen/internal/tracker"
	"invoicegen/pkg/models"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new PDF invoice interactively",
	Long: `Collect client details and line items interactively, allocate the next
sequential invoice number, render the invoice as a PDF, and record it in
the invoice ledger.

Business details (your name, address and bank details) are read from the
business details JSON file, by default config/business_details.json or
the path in the INVOICE_CONFIG environment variable.`,
	Example: `  # Generate an invoice, answering the prompts
  invoicegen generate

  # Reuse a saved contact instead of typing the client details
  invoicegen generate --contact "Smith Ltd"

  # Invoices due 14 days after issue when not due on receipt
  invoicegen generate --due-days 14

  # Save the client as a contact without being asked, under its
  # company-or-name key or an explicit one
  invoicegen generate --save-contact
  invoicegen generate --save-contact=main-client`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("contact", "c", "", "Load the client from a saved contact")
	generateCmd.Flags().Int("due-days", 30, "Days until the due date when not due on receipt")
	generateCmd.Flags().StringP("output-dir", "o", "", "Directory for the rendered PDF (overrides configuration)")
	generateCmd.Flags().String("save-contact", "", "Save the client as a contact, optionally under the given name (--save-contact=<name>)")
	// Bare --save-contact saves under the company-or-name key. pflag
	// needs a non-empty NoOptDefVal for the valueless form; the blank is
	// trimmed away before use and can never collide with a real key.
	generateCmd.Flags().Lookup("save-contact").NoOptDefVal = " "
}

func runGenerate(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("generate")

	contactName, _ := cmd.Flags().GetString("contact")
	dueDays, _ := cmd.Flags().GetInt("due-days")
	outputDir, _ := cmd.Flags().GetString("output-dir")
	saveContact := cmd.Flags().Changed("save-contact")
	saveContactName, _ := cmd.Flags().GetString("save-contact")
	saveContactName = strings.TrimSpace(saveContactName)

	cfg := config.Load()
	business, err := cfg.LoadBusinessDetails()
	if err != nil {
		return handleConfigError(err)
	}
	if outputDir != "" {
		business.OutputDir = outputDir
	}

	trackerStore, err := tracker.NewStore(cfg.TrackerFile)
	if err != nil {
		return fmt.Errorf("failed to open invoice tracker: %w", err)
	}
	contactStore, err := contacts.NewStore(cfg.ContactsFile)
	if err != nil {
		return fmt.Errorf("failed to open contact store: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "\n=== Invoice Generator ===")
	fmt.Fprintln(out)

	prompter := prompt.New(cmd.InOrStdin(), out)

	client, loadedFromStore, err := resolveClient(prompter, contactStore, contactName)
	if err != nil {
		return err
	}

	items, err := prompter.CollectLineItems()
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	dueOnReceipt, err := prompter.DueOnReceipt()
	if err != nil {
		return err
	}

	now := time.Now()
	issueDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	dueDate := issueDate
	if !dueOnReceipt {
		dueDate = issueDate.AddDate(0, 0, dueDays)
	}

	invoiceNumber, err := trackerStore.NextInvoiceNumber()
	if err != nil {
		return fmt.Errorf("failed to allocate invoice number: %w", err)
	}

	invoice, err := models.NewInvoice(invoiceNumber, issueDate, dueDate, business, client, items, "")
	if err != nil {
		return err
	}

	outputPath := filepath.Join(business.OutputDir, invoiceFilename(invoiceNumber, client))

	generator := pdf.NewGenerator(business, cfg.CurrencySymbol)
	if err := generator.Generate(invoice, outputPath); err != nil {
		return err
	}

	record := tracker.Record{
		InvoiceNumber: invoiceNumber,
		Client:        client.DisplayName(),
		Amount:        invoice.Total().StringFixed(2),
		Date:          issueDate.Format("2006-01-02"),
		FilePath:      outputPath,
	}
	if err := trackerStore.AppendRecord(record); err != nil {
		return fmt.Errorf("invoice PDF was written but recording it failed: %w", err)
	}

	switch {
	case saveContact:
		if err := contactStore.Upsert(client, saveContactName); err != nil {
			log.Warn().Err(err).Msg("Failed to save contact")
		}
	case !loadedFromStore:
		save, err := prompter.ConfirmSaveContact()
		if err != nil {
			log.Warn().Err(err).Msg("Skipping contact save prompt")
		} else if save {
			if err := contactStore.Upsert(client, ""); err != nil {
				log.Warn().Err(err).Msg("Failed to save contact")
			}
		}
	}

	log.Info().
		Str("invoice_number", invoiceNumber).
		Str("client", client.DisplayName()).
		Str("total", record.Amount).
		Str("path", outputPath).
		Msg("Invoice generated")

	fmt.Fprintln(out, "\n✓ Invoice generated successfully!")
	fmt.Fprintf(out, "  File: %s\n", outputPath)
	fmt.Fprintf(out, "  Invoice Number: %s\n", invoiceNumber)
	fmt.Fprintf(out, "  Total: %s%s\n", cfg.CurrencySymbol, record.Amount)
	return nil
}

// resolveClient loads the client from the contact store when a contact
// name was given, otherwise collects the details interactively. The
// second return value reports whether the client came from the store.
func resolveClient(prompter *prompt.Prompter, store *contacts.Store, contactName string) (models.ClientDetails, bool, error) {
	if contactName == "" {
		client, err := prompter.CollectClient()
		return client, false, err
	}

	contact, err := store.Get(contactName)
	if err != nil {
		if errors.Is(err, contacts.ErrNotFound) {
			return models.ClientDetails{}, false, fmt.Errorf("no saved contact named %q; run 'invoicegen contacts list' to see saved contacts", contactName)
		}
		return models.ClientDetails{}, false, err
	}
	return contact.Client(), true, nil
}

// handleConfigError turns typed configuration errors into actionable
// messages before the process exits non-zero.
func handleConfigError(err error) error {
	if errors.Is(err, config.ErrConfigNotFound) {
		var cerr *config.ConfigError
		path := config.DefaultBusinessDetailsFile
		if errors.As(err, &cerr) {
			path = cerr.Path
		}
		return fmt.Errorf("business details file not found at %s.\n"+
			"Create it with your details, for example:\n"+
			"  {\n"+
			"    \"name\": \"Your Name\",\n"+
			"    \"address_line1\": \"1 High Street\",\n"+
			"    \"city\": \"London\",\n"+
			"    \"postcode\": \"SW1A 1AA\",\n"+
			"    \"email\": \"you@example.com\",\n"+
			"    \"sort_code\": \"12-34-56\",\n"+
			"    \"account_number\": \"12345678\"\n"+
			"  }", path)
	}
	return err
}

var (
	unsafeChars    = regexp.MustCompile(`[^\w\s-]`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// sanitizeName converts a client display name into a filename-safe
// token: characters outside letters, digits, underscore, hyphen and
// whitespace are dropped, then whitespace runs collapse to one
// underscore.
func sanitizeName(name string) string {
	safe := unsafeChars.ReplaceAllString(name, "")
	return whitespaceRuns.ReplaceAllString(safe, "_")
}

// invoiceFilename builds the conventional "<number>_<client>.pdf" name.
func invoiceFilename(invoiceNumber string, client models.ClientDetails) string {
	return fmt.Sprintf("%s_%s.pdf", invoiceNumber, sanitizeName(client.DisplayName()))
}
