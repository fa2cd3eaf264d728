// Package prompt collects validated invoice input interactively. It is
// glue around the core: everything it returns already satisfies the
// model invariants, so the core performs no further input validation.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"invoicegen/pkg/models"
)

// ErrInputClosed is returned when the input stream ends mid-collection.
var ErrInputClosed = errors.New("input closed before collection finished")

// Basic UK postcode pattern, e.g. "SW1A 1AA" or "ls11aa".
var postcodePattern = regexp.MustCompile(`^[A-Za-z]{1,2}\d[A-Za-z\d]?\s*\d[A-Za-z]{2}$`)

// Prompter reads answers from in and writes prompts to out. Both are
// injected so collection is testable with scripted input.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// New creates a Prompter over the given streams.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

func (p *Prompter) readLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", ErrInputClosed
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// readValidated re-prompts until validate accepts the answer.
func (p *Prompter) readValidated(prompt string, validate func(string) bool, errMsg string) (string, error) {
	for {
		value, err := p.readLine(prompt)
		if err != nil {
			return "", err
		}
		if validate(value) {
			return value, nil
		}
		fmt.Fprintf(p.out, "  %s\n", errMsg)
	}
}

// CollectClient prompts for the client's identity and address. Name and
// company are individually optional but at least one is required; the
// postcode must look like a UK postcode and is upper-cased.
func (p *Prompter) CollectClient() (models.ClientDetails, error) {
	fmt.Fprintln(p.out, "Client Details")
	fmt.Fprintln(p.out, strings.Repeat("-", 40))

	name, err := p.readLine("Client name (optional, press Enter to skip): ")
	if err != nil {
		return models.ClientDetails{}, err
	}
	company, err := p.readLine("Company name (optional, press Enter to skip): ")
	if err != nil {
		return models.ClientDetails{}, err
	}

	if name == "" && company == "" {
		fmt.Fprintln(p.out, "  Error: Either client name or company name is required.")
		name, err = p.readValidated("Client name: ", notEmpty, "Client name cannot be empty.")
		if err != nil {
			return models.ClientDetails{}, err
		}
	}

	addressLine1, err := p.readValidated("Address line 1: ", notEmpty, "Address cannot be empty.")
	if err != nil {
		return models.ClientDetails{}, err
	}
	city, err := p.readValidated("City: ", notEmpty, "City cannot be empty.")
	if err != nil {
		return models.ClientDetails{}, err
	}
	postcode, err := p.readValidated("Postcode: ", validPostcode, "Please enter a valid UK postcode.")
	if err != nil {
		return models.ClientDetails{}, err
	}

	return models.NewClientDetails(name, company, addressLine1, city, strings.ToUpper(postcode))
}

// CollectLineItems prompts for line items until a blank description is
// entered. At least one item is required before the loop can finish.
func (p *Prompter) CollectLineItems() ([]models.LineItem, error) {
	fmt.Fprintln(p.out, "\nLine Items")
	fmt.Fprintln(p.out, strings.Repeat("-", 40))
	fmt.Fprintln(p.out, "Enter line items. Press Enter on description to finish.")
	fmt.Fprintln(p.out)

	var items []models.LineItem
	for itemNum := 1; ; itemNum++ {
		description, err := p.readLine(fmt.Sprintf("Item %d description (or Enter to finish): ", itemNum))
		if err != nil {
			return nil, err
		}
		if description == "" {
			if len(items) == 0 {
				fmt.Fprintln(p.out, "  Error: At least one line item is required.")
				itemNum--
				continue
			}
			return items, nil
		}

		amountText, err := p.readValidated(
			fmt.Sprintf("Item %d unit price: ", itemNum),
			validAmount,
			"Please enter a valid amount (e.g., 120.00).",
		)
		if err != nil {
			return nil, err
		}
		amount, err := decimal.NewFromString(amountText)
		if err != nil {
			return nil, fmt.Errorf("failed to parse amount: %w", err)
		}

		quantityText, err := p.readValidated(
			fmt.Sprintf("Item %d quantity [1]: ", itemNum),
			validQuantity,
			"Please enter a positive whole number.",
		)
		if err != nil {
			return nil, err
		}
		quantity := 1
		if quantityText != "" {
			quantity, _ = strconv.Atoi(quantityText)
		}

		item, err := models.NewLineItem(description, amount, quantity)
		if err != nil {
			fmt.Fprintf(p.out, "  %v\n", err)
			itemNum--
			continue
		}
		items = append(items, item)
	}
}

// DueOnReceipt asks whether the invoice is payable immediately.
// Pressing Enter accepts the default of yes.
func (p *Prompter) DueOnReceipt() (bool, error) {
	value, err := p.readLine("Due on receipt? (Y/n): ")
	if err != nil {
		return false, err
	}
	if value == "" {
		return true, nil
	}
	value = strings.ToLower(value)
	return value == "y" || value == "yes", nil
}

// ConfirmSaveContact asks whether the collected client should be stored
// for reuse. Pressing Enter declines.
func (p *Prompter) ConfirmSaveContact() (bool, error) {
	value, err := p.readLine("Save client as a contact? (y/N): ")
	if err != nil {
		return false, err
	}
	value = strings.ToLower(value)
	return value == "y" || value == "yes", nil
}

func notEmpty(value string) bool {
	return value != ""
}

func validPostcode(value string) bool {
	return postcodePattern.MatchString(value)
}

func validAmount(value string) bool {
	amount, err := decimal.NewFromString(value)
	return err == nil && amount.IsPositive()
}

// validQuantity accepts a blank (the default of 1) or a positive integer.
func validQuantity(value string) bool {
	if value == "" {
		return true
	}
	n, err := strconv.Atoi(value)
	return err == nil && n > 0
}
