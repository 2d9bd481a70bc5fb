package model

import "github.com/shopspring/decimal"

// Customer is one record in the customers document, keyed by its string id.
// Contact is stored encoded (see internal/codec).
type Customer struct {
	Name      string        `json:"name"`
	Contact   string        `json:"contact"`
	CreatedAt string        `json:"created_at"`
	History   []Transaction `json:"history"`
	IsStaff   bool          `json:"is_staff"`
	Username  *string       `json:"username"` // set only when IsStaff
}

// HistoryTotal sums the amounts of the customer's transaction history.
func (c Customer) HistoryTotal() decimal.Decimal {
	total := decimal.Zero
	for _, txn := range c.History {
		total = total.Add(txn.Amount)
	}
	return total
}
