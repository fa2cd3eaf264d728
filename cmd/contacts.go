package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"invoicegen/internal/config"
	"invoicegen/internal/contacts"
)

var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "Manage saved client contacts",
	Long: `List, inspect and delete the client contacts saved for reuse.
Contacts are saved from 'invoicegen generate' and can be loaded there
with the --contact flag.`,
}

var contactsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all saved contacts",
	Args:  cobra.NoArgs,
	RunE:  runContactsList,
}

var contactsShowCmd = &cobra.Command{
	Use:   "show <contact-name>",
	Short: "Show one saved contact",
	Args:  cobra.ExactArgs(1),
	RunE:  runContactsShow,
}

var contactsDeleteCmd = &cobra.Command{
	Use:   "delete <contact-name>",
	Short: "Delete a saved contact",
	Args:  cobra.ExactArgs(1),
	RunE:  runContactsDelete,
}

func init() {
	rootCmd.AddCommand(contactsCmd)
	contactsCmd.AddCommand(contactsListCmd)
	contactsCmd.AddCommand(contactsShowCmd)
	contactsCmd.AddCommand(contactsDeleteCmd)
}

func openContactStore() (*contacts.Store, error) {
	cfg := config.Load()
	store, err := contacts.NewStore(cfg.ContactsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open contact store: %w", err)
	}
	return store, nil
}

func runContactsList(cmd *cobra.Command, args []string) error {
	store, err := openContactStore()
	if err != nil {
		return err
	}

	all, err := store.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(all) == 0 {
		fmt.Fprintln(out, "No saved contacts.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CONTACT\tNAME\tCOMPANY\tCITY")
	for _, contact := range all {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", contact.ContactName, contact.Name, contact.Company, contact.City)
	}
	return w.Flush()
}

func runContactsShow(cmd *cobra.Command, args []string) error {
	store, err := openContactStore()
	if err != nil {
		return err
	}

	contact, err := store.Get(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Contact: %s\n", contact.ContactName)
	if contact.Name != "" {
		fmt.Fprintf(out, "  Name:    %s\n", contact.Name)
	}
	if contact.Company != "" {
		fmt.Fprintf(out, "  Company: %s\n", contact.Company)
	}
	fmt.Fprintf(out, "  Address: %s\n", contact.AddressLine1)
	fmt.Fprintf(out, "  City:    %s\n", contact.City)
	fmt.Fprintf(out, "  Post:    %s\n", contact.Postcode)
	return nil
}

func runContactsDelete(cmd *cobra.Command, args []string) error {
	store, err := openContactStore()
	if err != nil {
		return err
	}

	deleted, err := store.Delete(args[0])
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("no saved contact named %q", args[0])
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted contact %q.\n", args[0])
	return nil
}
