// Package importer parses bulk transaction CSV files for intake through the
// ledger. Parsing is separate from recording so a bad file is rejected
// before any mutation.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
)

// Header is the expected CSV header.
const Header = "customer_id,amount"

const (
	numFields     = 2
	colCustomerID = 0
	colAmount     = 1
)

// Row is one transaction to record.
type Row struct {
	CustomerID string
	Amount     decimal.Decimal
}

// Read parses an intake CSV. The first row is the header.
func Read(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading intake CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var rows []Row
	for i, rec := range records[1:] {
		row, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadFile parses the intake CSV at path.
func ReadFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return Read(f)
}

func parseRow(rec []string) (Row, error) {
	if rec[colCustomerID] == "" {
		return Row{}, fmt.Errorf("missing customer_id")
	}

	amount, err := decimal.NewFromString(rec[colAmount])
	if err != nil {
		return Row{}, fmt.Errorf("parsing amount %q: %w", rec[colAmount], err)
	}

	return Row{CustomerID: rec[colCustomerID], Amount: amount}, nil
}
