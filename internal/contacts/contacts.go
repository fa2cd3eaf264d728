// Package contacts persists reusable client records keyed by a
// user-chosen contact name, backed by a JSON document on disk.
package contacts

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"invoicegen/internal/logger"
	"invoicegen/pkg/models"
)

// ErrNotFound is returned when no contact matches the requested name.
var ErrNotFound = errors.New("contact not found")

// Contact is a named, reusable snapshot of a client's details.
type Contact struct {
	ContactName  string `json:"contact_name"`
	Name         string `json:"name"`
	Company      string `json:"company"`
	AddressLine1 string `json:"address_line1"`
	City         string `json:"city"`
	Postcode     string `json:"postcode"`
}

// Client converts the stored snapshot back into a ClientDetails value.
func (c Contact) Client() models.ClientDetails {
	return models.ClientDetails{
		Name:         c.Name,
		Company:      c.Company,
		AddressLine1: c.AddressLine1,
		City:         c.City,
		Postcode:     c.Postcode,
	}
}

// document is the full on-disk shape of the contacts file.
type document struct {
	Contacts []Contact `json:"contacts"`
}

// Store manages contact persistence. Like the tracker, every operation
// is a full read-modify-write of the backing document and assumes
// single-process sequential use.
type Store struct {
	path string
	log  zerolog.Logger
}

// NewStore creates a contact store over the document at path, creating
// the parent directory and an initial document if none exists.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path: path,
		log:  logger.WithComponent("contacts"),
	}
	if err := s.ensureExists(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureExists() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create contacts directory: %w", err)
	}
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		s.log.Info().Str("path", s.path).Msg("Creating new contacts file")
		return s.save(document{Contacts: []Contact{}})
	}
	return nil
}

// load reads the document from disk, reinitializing it to an empty
// contact list when missing or unparseable.
func (s *Store) load() (document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return document{}, fmt.Errorf("failed to read contacts file: %w", err)
		}
		doc := document{Contacts: []Contact{}}
		return doc, s.save(doc)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.log.Warn().
			Err(err).
			Str("path", s.path).
			Msg("Contacts file is unreadable, reinitializing")
		doc = document{Contacts: []Contact{}}
		return doc, s.save(doc)
	}
	if doc.Contacts == nil {
		doc.Contacts = []Contact{}
	}
	return doc, nil
}

func (s *Store) save(doc document) error {
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode contacts document: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write contacts file: %w", err)
	}
	return nil
}

// List returns all saved contacts in storage order.
func (s *Store) List() ([]Contact, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return doc.Contacts, nil
}

// Get retrieves a contact by its exact contact name, or ErrNotFound.
func (s *Store) Get(contactName string) (Contact, error) {
	doc, err := s.load()
	if err != nil {
		return Contact{}, err
	}
	for _, contact := range doc.Contacts {
		if contact.ContactName == contactName {
			return contact, nil
		}
	}
	return Contact{}, fmt.Errorf("%w: %s", ErrNotFound, contactName)
}

// Upsert saves a client under contactName. An empty contactName resolves
// to the client's company, falling back to the client's name. When a
// contact with the resolved key already exists its fields are overwritten
// in place, preserving its position; otherwise a new contact is appended.
func (s *Store) Upsert(client models.ClientDetails, contactName string) error {
	if contactName == "" {
		contactName = client.DisplayName()
	}

	doc, err := s.load()
	if err != nil {
		return err
	}

	updated := Contact{
		ContactName:  contactName,
		Name:         client.Name,
		Company:      client.Company,
		AddressLine1: client.AddressLine1,
		City:         client.City,
		Postcode:     client.Postcode,
	}

	found := false
	for i, contact := range doc.Contacts {
		if contact.ContactName == contactName {
			doc.Contacts[i] = updated
			found = true
			break
		}
	}
	if !found {
		doc.Contacts = append(doc.Contacts, updated)
	}

	if err := s.save(doc); err != nil {
		return err
	}

	s.log.Info().
		Str("contact_name", contactName).
		Bool("updated", found).
		Msg("Saved contact")
	return nil
}

// Delete removes the first contact with the given name, reporting
// whether a match was found.
func (s *Store) Delete(contactName string) (bool, error) {
	doc, err := s.load()
	if err != nil {
		return false, err
	}

	for i, contact := range doc.Contacts {
		if contact.ContactName == contactName {
			doc.Contacts = append(doc.Contacts[:i], doc.Contacts[i+1:]...)
			if err := s.save(doc); err != nil {
				return false, err
			}
			s.log.Info().Str("contact_name", contactName).Msg("Deleted contact")
			return true, nil
		}
	}
	return false, nil
}
