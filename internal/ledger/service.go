// Package ledger owns the in-memory customer, transaction, and credential
// collections. Collections are loaded once from their JSON documents, mutated
// in memory by the operations below, and written back only on Flush.
package ledger

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerdesk-dev/ledgerdesk/internal/model"
	"github.com/ledgerdesk-dev/ledgerdesk/internal/store"
)

var (
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrUsernameTaken       = errors.New("username already exists")
)

// Paths locates the four documents backing a ledger.
type Paths struct {
	Customers    string
	Transactions string
	Credentials  string
	Dashboard    string
}

// DefaultPaths returns the standard document layout under dataDir.
func DefaultPaths(dataDir string) Paths {
	return Paths{
		Customers:    filepath.Join(dataDir, "customers.json"),
		Transactions: filepath.Join(dataDir, "transactions.json"),
		Credentials:  filepath.Join(dataDir, "credentials.json"),
		Dashboard:    filepath.Join(dataDir, "dashboard.json"),
	}
}

// Service is the single in-process owner of the collections.
type Service struct {
	paths     Paths
	customers map[string]*model.Customer
	txns      []model.Transaction
	creds     map[string]string
	validate  *validator.Validate
}

// Open loads the three collections, treating missing or unparseable
// documents as empty.
func Open(paths Paths) *Service {
	customers := store.Load(paths.Customers, map[string]*model.Customer{})
	txns := store.Load(paths.Transactions, []model.Transaction{})
	creds := store.Load(paths.Credentials, map[string]string{})

	// A document holding JSON null parses cleanly into a nil collection.
	if customers == nil {
		customers = map[string]*model.Customer{}
	}
	if txns == nil {
		txns = []model.Transaction{}
	}
	if creds == nil {
		creds = map[string]string{}
	}

	// Records written before history tracking lack the field.
	for _, c := range customers {
		if c.History == nil {
			c.History = []model.Transaction{}
		}
	}

	return &Service{
		paths:     paths,
		customers: customers,
		txns:      txns,
		creds:     creds,
		validate:  validator.New(),
	}
}

// AddCustomerParams holds the inputs for AddCustomer. Contact arrives
// already encoded; Username is the paired login name for staff customers,
// though creating the credential itself stays with the caller.
type AddCustomerParams struct {
	Name     string `validate:"required"`
	Contact  string
	Staff    bool
	Username string `validate:"required_if=Staff true"`
}

// AddCustomer creates a customer record and returns its id. Ids are the
// stringified count of existing customers plus one; existing documents
// depend on this rule, so it stays even though it assumes customers are
// never deleted.
func (s *Service) AddCustomer(params AddCustomerParams) (string, error) {
	if err := s.validate.Struct(params); err != nil {
		return "", fmt.Errorf("invalid customer: %w", err)
	}

	id := strconv.Itoa(len(s.customers) + 1)
	c := &model.Customer{
		Name:      params.Name,
		Contact:   params.Contact,
		CreatedAt: model.Now(),
		History:   []model.Transaction{},
		IsStaff:   params.Staff,
	}
	if params.Staff {
		c.Username = &params.Username
	}
	s.customers[id] = c
	return id, nil
}

// AddCredential registers a login. The username must not be taken.
func (s *Service) AddCredential(username, encodedPassword string) error {
	if _, ok := s.creds[username]; ok {
		return fmt.Errorf("%w: %s", ErrUsernameTaken, username)
	}
	s.creds[username] = encodedPassword
	return nil
}

// AddTransaction records a transaction against an existing customer,
// appending the same value to the global list and the customer's history.
func (s *Service) AddTransaction(customerID string, amount decimal.Decimal, staffUsername string) (model.Transaction, error) {
	c, ok := s.customers[customerID]
	if !ok {
		return model.Transaction{}, fmt.Errorf("%w: %s", ErrCustomerNotFound, customerID)
	}

	txn := model.Transaction{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		Amount:     amount,
		Timestamp:  model.Now(),
	}
	if staffUsername != "" {
		txn.StaffUsername = &staffUsername
	}

	s.txns = append(s.txns, txn)
	c.History = append(c.History, txn)
	return txn, nil
}

// EditTransaction sets a new amount on every transaction matching
// (customerID, timestamp) in the global list, and on every history entry of
// that customer matching the timestamp. Duplicate timestamps are
// indistinguishable, so all matches change together.
func (s *Service) EditTransaction(customerID, timestamp string, amount decimal.Decimal) error {
	found := false
	for i := range s.txns {
		if s.txns[i].CustomerID == customerID && s.txns[i].Timestamp == timestamp {
			s.txns[i].Amount = amount
			found = true
		}
	}
	if c, ok := s.customers[customerID]; ok {
		for i := range c.History {
			if c.History[i].Timestamp == timestamp {
				c.History[i].Amount = amount
				found = true
			}
		}
	}
	if !found {
		return fmt.Errorf("%w: customer %s at %s", ErrTransactionNotFound, customerID, timestamp)
	}
	return nil
}

// DeleteTransaction removes every transaction matching (customerID,
// timestamp) from the global list and the customer's history.
func (s *Service) DeleteTransaction(customerID, timestamp string) error {
	removed := false

	kept := make([]model.Transaction, 0, len(s.txns))
	for _, txn := range s.txns {
		if txn.CustomerID == customerID && txn.Timestamp == timestamp {
			removed = true
			continue
		}
		kept = append(kept, txn)
	}
	s.txns = kept

	if c, ok := s.customers[customerID]; ok {
		hist := make([]model.Transaction, 0, len(c.History))
		for _, txn := range c.History {
			if txn.Timestamp == timestamp {
				removed = true
				continue
			}
			hist = append(hist, txn)
		}
		c.History = hist
	}

	if !removed {
		return fmt.Errorf("%w: customer %s at %s", ErrTransactionNotFound, customerID, timestamp)
	}
	return nil
}

// Flush writes the three collections to their documents, customers first,
// then transactions, then credentials. The writes are not atomic as a set;
// the first failure stops the sequence and is returned.
func (s *Service) Flush() error {
	if err := store.Save(s.paths.Customers, s.customers); err != nil {
		return fmt.Errorf("saving customers: %w", err)
	}
	if err := store.Save(s.paths.Transactions, s.txns); err != nil {
		return fmt.Errorf("saving transactions: %w", err)
	}
	if err := store.Save(s.paths.Credentials, s.creds); err != nil {
		return fmt.Errorf("saving credentials: %w", err)
	}
	return nil
}

// ExportDashboard writes the transaction list to the dashboard document.
// The document is write-only; nothing reads it back.
func (s *Service) ExportDashboard() error {
	if err := store.Save(s.paths.Dashboard, s.txns); err != nil {
		return fmt.Errorf("saving dashboard: %w", err)
	}
	return nil
}

// Customer returns the customer with the given id.
func (s *Service) Customer(id string) (model.Customer, bool) {
	c, ok := s.customers[id]
	if !ok {
		return model.Customer{}, false
	}
	return *c, true
}

// CustomerIDs returns all customer ids in numeric order.
func (s *Service) CustomerIDs() []string {
	ids := make([]string, 0, len(s.customers))
	for id := range s.customers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, aerr := strconv.Atoi(ids[i])
		b, berr := strconv.Atoi(ids[j])
		if aerr == nil && berr == nil {
			return a < b
		}
		if aerr != nil && berr != nil {
			return ids[i] < ids[j]
		}
		return aerr == nil
	})
	return ids
}

// CustomerCount returns the number of customer records.
func (s *Service) CustomerCount() int {
	return len(s.customers)
}

// Transactions returns a copy of the global transaction list.
func (s *Service) Transactions() []model.Transaction {
	out := make([]model.Transaction, len(s.txns))
	copy(out, s.txns)
	return out
}

// TransactionsByStaff returns the transactions recorded by username, in
// insertion order.
func (s *Service) TransactionsByStaff(username string) []model.Transaction {
	var out []model.Transaction
	for _, txn := range s.txns {
		if txn.RecordedBy(username) {
			out = append(out, txn)
		}
	}
	return out
}

// TotalVolume sums all transaction amounts.
func (s *Service) TotalVolume() decimal.Decimal {
	total := decimal.Zero
	for _, txn := range s.txns {
		total = total.Add(txn.Amount)
	}
	return total
}

// Credential returns the encoded password stored for username.
func (s *Service) Credential(username string) (string, bool) {
	enc, ok := s.creds[username]
	return enc, ok
}
