package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultVATStatus is the VAT label printed on invoices when no other
// status is supplied. VAT is a label only, never a computed amount.
const DefaultVATStatus = "No VAT"

// LineItem is one billable entry on an invoice. Amounts are exact
// decimals; they never pass through binary floating point.
type LineItem struct {
	Description string
	Amount      decimal.Decimal // Unit price, strictly positive
	Quantity    int             // Positive integer, defaults to 1
}

// NewLineItem builds a LineItem, validating the description, amount and
// quantity. A quantity of 0 is treated as the default of 1.
func NewLineItem(description string, amount decimal.Decimal, quantity int) (LineItem, error) {
	if description == "" {
		return LineItem{}, NewValidationError("description", description, "description cannot be empty")
	}
	if !amount.IsPositive() {
		return LineItem{}, NewValidationError("amount", amount.String(), "amount must be greater than zero")
	}
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return LineItem{}, NewValidationError("quantity", quantity, "quantity must be a positive integer")
	}
	return LineItem{
		Description: description,
		Amount:      amount,
		Quantity:    quantity,
	}, nil
}

// LineTotal returns amount × quantity as an exact decimal. The value is
// always derived, never stored.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.Amount.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Invoice is the aggregate root: everything the document composer and the
// record store need. Constructed once all inputs are collected and
// immutable thereafter.
type Invoice struct {
	InvoiceNumber string // Format "INV<integer>", allocated by the tracker
	IssueDate     time.Time
	DueDate       time.Time // Equal to IssueDate means "due on receipt"
	Business      BusinessDetails
	Client        ClientDetails
	LineItems     []LineItem // Non-empty; printed in insertion order
	VATStatus     string     // Free-text label, e.g. "No VAT"
}

// NewInvoice builds an Invoice, validating that at least one line item is
// present. An empty vatStatus falls back to DefaultVATStatus.
func NewInvoice(number string, issueDate, dueDate time.Time, business BusinessDetails, client ClientDetails, items []LineItem, vatStatus string) (Invoice, error) {
	if len(items) == 0 {
		return Invoice{}, NewValidationError("line_items", len(items), "at least one line item is required")
	}
	if vatStatus == "" {
		vatStatus = DefaultVATStatus
	}
	lineItems := make([]LineItem, len(items))
	copy(lineItems, items)
	return Invoice{
		InvoiceNumber: number,
		IssueDate:     issueDate,
		DueDate:       dueDate,
		Business:      business,
		Client:        client,
		LineItems:     lineItems,
		VATStatus:     vatStatus,
	}, nil
}

// Subtotal sums the line totals with exact decimal arithmetic.
func (inv Invoice) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range inv.LineItems {
		sum = sum.Add(item.LineTotal())
	}
	return sum
}

// Total equals the subtotal. VAT is carried as a label only, so nothing
// is added on top.
func (inv Invoice) Total() decimal.Decimal {
	return inv.Subtotal()
}

// DueOnReceipt reports whether the invoice is payable immediately, i.e.
// the due date equals the issue date.
func (inv Invoice) DueOnReceipt() bool {
	return inv.DueDate.Equal(inv.IssueDate)
}
