package models

// ClientDetails identifies the invoice recipient. Name and Company may
// each be empty, but never both: at least one must identify the client.
type ClientDetails struct {
	Name         string
	Company      string
	AddressLine1 string
	City         string
	Postcode     string
}

// NewClientDetails builds a ClientDetails, enforcing that at least one of
// name or company is set.
func NewClientDetails(name, company, addressLine1, city, postcode string) (ClientDetails, error) {
	if name == "" && company == "" {
		return ClientDetails{}, NewValidationError("name", name, "either client name or company name is required")
	}
	return ClientDetails{
		Name:         name,
		Company:      company,
		AddressLine1: addressLine1,
		City:         city,
		Postcode:     postcode,
	}, nil
}

// DisplayName returns the name used to identify the client on records and
// filenames: the company when present, otherwise the personal name.
func (c ClientDetails) DisplayName() string {
	if c.Company != "" {
		return c.Company
	}
	return c.Name
}
