package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimestampFormat is the layout of every timestamp string in the documents.
// Timestamps are stored as opaque strings; this layout only governs new
// captures.
const TimestampFormat = "2006-01-02 15:04:05.000000"

func init() {
	// Amounts in the JSON documents are bare numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Transaction is one monetary record. The same value lives in the global
// transactions document and in the owning customer's history; the two are
// independent copies and every mutation touches both.
type Transaction struct {
	// ID is a generated token stamped at creation. Legacy records have none;
	// the edit/delete identity remains (customer id, timestamp).
	ID            string          `json:"id,omitempty"`
	CustomerID    string          `json:"customer_id"`
	Amount        decimal.Decimal `json:"amount"` // negative = debit
	Timestamp     string          `json:"timestamp"`
	StaffUsername *string         `json:"staff_username"` // nil for admin-created or legacy records
}

// RecordedBy reports whether the transaction was recorded by username.
func (t Transaction) RecordedBy(username string) bool {
	return t.StaffUsername != nil && *t.StaffUsername == username
}

// Now returns the current time in the stored timestamp format.
func Now() string {
	return time.Now().Format(TimestampFormat)
}
