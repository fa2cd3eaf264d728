// Package tracker owns invoice numbering and the append-only ledger of
// issued invoices, backed by a single JSON document on disk.
package tracker

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"invoicegen/internal/logger"
)

// initialNumber seeds the sequence: the first allocation returns INV1001.
const initialNumber = 1000

// Record is one ledger entry for an issued invoice. Entries are appended
// in issue order and never updated or deleted.
type Record struct {
	InvoiceNumber string `json:"invoice_number"`
	Client        string `json:"client"`    // Display name: company if present, else client name
	Amount        string `json:"amount"`    // Exact decimal text, e.g. "150.00"
	Date          string `json:"date"`      // Issue date, ISO-8601 (2006-01-02)
	FilePath      string `json:"file_path"` // Where the rendered PDF was written
}

// document is the full on-disk shape of the tracker file.
type document struct {
	LastInvoiceNumber int      `json:"last_invoice_number"`
	Invoices          []Record `json:"invoices"`
}

func defaultDocument() document {
	return document{LastInvoiceNumber: initialNumber, Invoices: []Record{}}
}

// Store allocates sequential invoice numbers and records issued invoices.
// Every operation is a full read-modify-write of the backing document, so
// numbering survives process restarts and always reflects the written
// state. The store assumes single-process sequential use; there is no
// file locking.
type Store struct {
	path string
	log  zerolog.Logger
}

// NewStore creates a tracker store over the document at path, creating
// the parent directory and an initial document if none exists.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path: path,
		log:  logger.WithComponent("tracker"),
	}
	if err := s.ensureExists(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureExists() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create tracker directory: %w", err)
	}
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		s.log.Info().Str("path", s.path).Msg("Creating new invoice tracker file")
		return s.save(defaultDocument())
	}
	return nil
}

// load reads the document from disk. A missing, empty or unparseable
// file is replaced with the default document; prior unreadable content
// is discarded, not backed up.
func (s *Store) load() (document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return document{}, fmt.Errorf("failed to read tracker file: %w", err)
		}
		doc := defaultDocument()
		return doc, s.save(doc)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.log.Warn().
			Err(err).
			Str("path", s.path).
			Msg("Tracker file is unreadable, reinitializing")
		doc = defaultDocument()
		return doc, s.save(doc)
	}
	if doc.Invoices == nil {
		doc.Invoices = []Record{}
	}
	return doc, nil
}

func (s *Store) save(doc document) error {
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode tracker document: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write tracker file: %w", err)
	}
	return nil
}

// NextInvoiceNumber allocates and returns the next invoice number in the
// form "INV1001", "INV1002", … The increment is persisted before the
// number is returned, so numbers are strictly increasing with no gaps
// under sequential use.
func (s *Store) NextInvoiceNumber() (string, error) {
	doc, err := s.load()
	if err != nil {
		return "", err
	}

	doc.LastInvoiceNumber++
	if err := s.save(doc); err != nil {
		return "", err
	}

	number := fmt.Sprintf("INV%d", doc.LastInvoiceNumber)
	s.log.Info().Str("invoice_number", number).Msg("Allocated invoice number")
	return number, nil
}

// AppendRecord appends a ledger entry, preserving all prior entries and
// their order. Duplicate invoice numbers are not defended against; it is
// the caller's responsibility to record each invoice exactly once.
func (s *Store) AppendRecord(rec Record) error {
	doc, err := s.load()
	if err != nil {
		return err
	}

	doc.Invoices = append(doc.Invoices, rec)
	if err := s.save(doc); err != nil {
		return err
	}

	s.log.Info().
		Str("invoice_number", rec.InvoiceNumber).
		Str("client", rec.Client).
		Str("amount", rec.Amount).
		Msg("Recorded invoice")
	return nil
}

// Records returns all ledger entries in insertion order.
func (s *Store) Records() ([]Record, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return doc.Invoices, nil
}
