package models

// BusinessDetails holds the invoice issuer's identity and payment details.
// Constructed once at startup from configuration and treated as immutable
// for the lifetime of the process.
type BusinessDetails struct {
	Name          string
	AddressLine1  string
	City          string
	Postcode      string
	Email         string
	SortCode      string // Bank sort code, free text (e.g. "12-34-56")
	AccountNumber string // Bank account number, free text
	OutputDir     string // Optional override for the rendered invoice directory
}
