// Package report writes the per-customer CSV summary. It is a read-only
// formatter over the ledger; nothing here mutates state.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledgerdesk-dev/ledgerdesk/internal/codec"
	"github.com/ledgerdesk-dev/ledgerdesk/internal/model"
)

// Header is the CSV header for the customer report.
const Header = "customer_id,name,contact,total"

const (
	numFields  = 4
	colID      = 0
	colName    = 1
	colContact = 2
	colTotal   = 3
)

// FileName is the report written under the reports directory.
const FileName = "customer_report.csv"

// CustomerSource supplies customers for the report.
type CustomerSource interface {
	CustomerIDs() []string
	Customer(id string) (model.Customer, bool)
}

// Write writes the report for every customer, one row each: id, name,
// decoded contact, and the decimal sum of the customer's history.
func Write(w io.Writer, src CustomerSource) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, id := range src.CustomerIDs() {
		c, ok := src.Customer(id)
		if !ok {
			continue
		}

		contact, err := codec.Decode(c.Contact)
		if err != nil {
			return fmt.Errorf("decoding contact for customer %s: %w", id, err)
		}

		row := make([]string, numFields)
		row[colID] = id
		row[colName] = c.Name
		row[colContact] = contact
		row[colTotal] = c.HistoryTotal().StringFixed(2)

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row for customer %s: %w", id, err)
		}
	}
	return cw.Error()
}

// Generate writes the report file under reportsDir and returns its path.
func Generate(reportsDir string, src CustomerSource) (string, error) {
	if err := os.MkdirAll(reportsDir, 0o755); err != nil {
		return "", fmt.Errorf("creating reports dir: %w", err)
	}

	path := filepath.Join(reportsDir, FileName)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating report: %w", err)
	}
	defer f.Close()

	if err := Write(f, src); err != nil {
		return "", err
	}
	return path, nil
}
