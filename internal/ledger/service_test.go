package ledger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerdesk-dev/ledgerdesk/internal/codec"
	"github.com/ledgerdesk-dev/ledgerdesk/internal/model"
	"github.com/ledgerdesk-dev/ledgerdesk/internal/store"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newService(t *testing.T) (*Service, Paths) {
	t.Helper()
	paths := DefaultPaths(t.TempDir())
	return Open(paths), paths
}

func TestOpen_EmptyDocuments(t *testing.T) {
	svc, _ := newService(t)
	assert.Zero(t, svc.CustomerCount())
	assert.Empty(t, svc.Transactions())
}

func TestOpen_NormalizesHistory(t *testing.T) {
	paths := DefaultPaths(t.TempDir())

	// A legacy record without the history field.
	raw := `{"1": {"name": "Old Customer", "contact": "b2xk", "created_at": "2023-01-01 00:00:00.000000", "is_staff": false, "username": null}}`
	require.NoError(t, os.WriteFile(paths.Customers, []byte(raw), 0o644))

	svc := Open(paths)
	c, ok := svc.Customer("1")
	require.True(t, ok)
	assert.NotNil(t, c.History)
	assert.Empty(t, c.History)
}

func TestAddCustomer_SequentialIDs(t *testing.T) {
	svc, _ := newService(t)

	for i, want := range []string{"1", "2", "3"} {
		id, err := svc.AddCustomer(AddCustomerParams{Name: "Customer", Contact: codec.Encode("c@x.com")})
		require.NoError(t, err, "customer %d", i+1)
		assert.Equal(t, want, id)
	}
}

func TestAddCustomer_RequiresName(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.AddCustomer(AddCustomerParams{Contact: codec.Encode("c@x.com")})
	require.Error(t, err)
	assert.Zero(t, svc.CustomerCount())
}

func TestAddCustomer_StaffRequiresUsername(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.AddCustomer(AddCustomerParams{Name: "Pat", Staff: true})
	require.Error(t, err)

	id, err := svc.AddCustomer(AddCustomerParams{Name: "Pat", Staff: true, Username: "pat"})
	require.NoError(t, err)

	c, ok := svc.Customer(id)
	require.True(t, ok)
	assert.True(t, c.IsStaff)
	require.NotNil(t, c.Username)
	assert.Equal(t, "pat", *c.Username)
}

func TestAddCredential_Taken(t *testing.T) {
	svc, _ := newService(t)

	require.NoError(t, svc.AddCredential("alice", codec.Encode("pw")))
	err := svc.AddCredential("alice", codec.Encode("other"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAddTransaction_DualWrite(t *testing.T) {
	svc, _ := newService(t)
	id, err := svc.AddCustomer(AddCustomerParams{Name: "Jane Doe", Contact: codec.Encode("jane@x.com")})
	require.NoError(t, err)
	require.Equal(t, "1", id)

	txn, err := svc.AddTransaction("1", dec("150.0"), "alice")
	require.NoError(t, err)

	txns := svc.Transactions()
	require.Len(t, txns, 1)
	c, ok := svc.Customer("1")
	require.True(t, ok)
	require.Len(t, c.History, 1)

	assert.Equal(t, txns[0], c.History[0])
	assert.Equal(t, txn, txns[0])
	assert.True(t, txns[0].Amount.Equal(dec("150.0")))
	require.NotNil(t, txns[0].StaffUsername)
	assert.Equal(t, "alice", *txns[0].StaffUsername)
	assert.NotEmpty(t, txns[0].ID)
}

func TestAddTransaction_UnknownCustomer(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.AddCustomer(AddCustomerParams{Name: "Jane Doe", Contact: codec.Encode("jane@x.com")})
	require.NoError(t, err)

	_, err = svc.AddTransaction("999", dec("10.0"), "alice")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	assert.Empty(t, svc.Transactions())
	c, _ := svc.Customer("1")
	assert.Empty(t, c.History)
}

func TestAddTransaction_NoStaffUsername(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.AddCustomer(AddCustomerParams{Name: "Jane Doe", Contact: codec.Encode("jane@x.com")})
	require.NoError(t, err)

	txn, err := svc.AddTransaction("1", dec("25"), "")
	require.NoError(t, err)
	assert.Nil(t, txn.StaffUsername)
}

func TestEditTransaction_BothLocations(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.AddCustomer(AddCustomerParams{Name: "Jane Doe", Contact: codec.Encode("jane@x.com")})
	require.NoError(t, err)
	txn, err := svc.AddTransaction("1", dec("100.0"), "alice")
	require.NoError(t, err)

	require.NoError(t, svc.EditTransaction("1", txn.Timestamp, dec("250.0")))

	txns := svc.Transactions()
	require.Len(t, txns, 1)
	assert.True(t, txns[0].Amount.Equal(dec("250.0")))

	c, _ := svc.Customer("1")
	require.Len(t, c.History, 1)
	assert.True(t, c.History[0].Amount.Equal(dec("250.0")))
}

func TestEditTransaction_AllMatches(t *testing.T) {
	// Two transactions sharing a timestamp are indistinguishable; an edit
	// must change both copies of both.
	paths := DefaultPaths(t.TempDir())
	ts := "2024-06-01 10:00:00.000000"
	txns := []model.Transaction{
		{CustomerID: "1", Amount: dec("10"), Timestamp: ts},
		{CustomerID: "1", Amount: dec("20"), Timestamp: ts},
	}
	customers := map[string]*model.Customer{
		"1": {Name: "Jane Doe", Contact: codec.Encode("jane@x.com"), History: txns},
	}
	require.NoError(t, store.Save(paths.Transactions, txns))
	require.NoError(t, store.Save(paths.Customers, customers))

	svc := Open(paths)
	require.NoError(t, svc.EditTransaction("1", ts, dec("99")))

	for _, txn := range svc.Transactions() {
		assert.True(t, txn.Amount.Equal(dec("99")))
	}
	c, _ := svc.Customer("1")
	for _, txn := range c.History {
		assert.True(t, txn.Amount.Equal(dec("99")))
	}
}

func TestEditTransaction_NotFound(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.AddCustomer(AddCustomerParams{Name: "Jane Doe", Contact: codec.Encode("jane@x.com")})
	require.NoError(t, err)

	err = svc.EditTransaction("1", "2024-01-01 00:00:00.000000", dec("5"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestDeleteTransaction_BothLocations(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.AddCustomer(AddCustomerParams{Name: "Jane Doe", Contact: codec.Encode("jane@x.com")})
	require.NoError(t, err)
	keep, err := svc.AddTransaction("1", dec("40"), "alice")
	require.NoError(t, err)
	drop, err := svc.AddTransaction("1", dec("60"), "alice")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTransaction("1", drop.Timestamp))

	txns := svc.Transactions()
	require.Len(t, txns, 1)
	assert.Equal(t, keep.Timestamp, txns[0].Timestamp)

	c, _ := svc.Customer("1")
	require.Len(t, c.History, 1)
	assert.Equal(t, keep.Timestamp, c.History[0].Timestamp)
}

func TestDeleteTransaction_NotFound(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.AddCustomer(AddCustomerParams{Name: "Jane Doe", Contact: codec.Encode("jane@x.com")})
	require.NoError(t, err)
	_, err = svc.AddTransaction("1", dec("40"), "alice")
	require.NoError(t, err)

	err = svc.DeleteTransaction("1", "never")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransactionNotFound)
	assert.Len(t, svc.Transactions(), 1)
}

func TestFlush_RoundTrip(t *testing.T) {
	svc, paths := newService(t)
	id, err := svc.AddCustomer(AddCustomerParams{Name: "Jane Doe", Contact: codec.Encode("jane@x.com")})
	require.NoError(t, err)
	require.NoError(t, svc.AddCredential("alice", codec.Encode("pw")))
	txn, err := svc.AddTransaction(id, dec("75.50"), "alice")
	require.NoError(t, err)

	require.NoError(t, svc.Flush())

	reloaded := Open(paths)
	assert.Equal(t, 1, reloaded.CustomerCount())

	c, ok := reloaded.Customer(id)
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", c.Name)
	require.Len(t, c.History, 1)
	assert.True(t, c.History[0].Amount.Equal(dec("75.50")))

	txns := reloaded.Transactions()
	require.Len(t, txns, 1)
	assert.Equal(t, txn.ID, txns[0].ID)

	enc, ok := reloaded.Credential("alice")
	require.True(t, ok)
	assert.Equal(t, codec.Encode("pw"), enc)
}

func TestExportDashboard(t *testing.T) {
	svc, paths := newService(t)
	_, err := svc.AddCustomer(AddCustomerParams{Name: "Jane Doe", Contact: codec.Encode("jane@x.com")})
	require.NoError(t, err)
	_, err = svc.AddTransaction("1", dec("500"), "alice")
	require.NoError(t, err)

	require.NoError(t, svc.ExportDashboard())

	snapshot := store.Load(paths.Dashboard, []model.Transaction(nil))
	require.Len(t, snapshot, 1)
	assert.True(t, snapshot[0].Amount.Equal(dec("500")))

	// The snapshot is independent of Flush.
	_, err = os.Stat(paths.Transactions)
	assert.True(t, os.IsNotExist(err))
}

func TestCustomerIDs_NumericOrder(t *testing.T) {
	svc, _ := newService(t)
	for i := 0; i < 11; i++ {
		_, err := svc.AddCustomer(AddCustomerParams{Name: "Customer"})
		require.NoError(t, err)
	}

	ids := svc.CustomerIDs()
	require.Len(t, ids, 11)
	assert.Equal(t, "2", ids[1])
	assert.Equal(t, "10", ids[9])
	assert.Equal(t, "11", ids[10])
}

func TestTransactionsByStaff(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.AddCustomer(AddCustomerParams{Name: "Jane Doe", Contact: codec.Encode("jane@x.com")})
	require.NoError(t, err)

	_, err = svc.AddTransaction("1", dec("10"), "alice")
	require.NoError(t, err)
	_, err = svc.AddTransaction("1", dec("20"), "bob")
	require.NoError(t, err)
	_, err = svc.AddTransaction("1", dec("30"), "alice")
	require.NoError(t, err)

	mine := svc.TransactionsByStaff("alice")
	require.Len(t, mine, 2)
	assert.True(t, mine[0].Amount.Equal(dec("10")))
	assert.True(t, mine[1].Amount.Equal(dec("30")))
}

func TestTotalVolume(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.AddCustomer(AddCustomerParams{Name: "Jane Doe", Contact: codec.Encode("jane@x.com")})
	require.NoError(t, err)

	_, err = svc.AddTransaction("1", dec("100"), "alice")
	require.NoError(t, err)
	_, err = svc.AddTransaction("1", dec("-40"), "alice")
	require.NoError(t, err)

	assert.True(t, svc.TotalVolume().Equal(dec("60")))
}

func TestEndToEnd_FreshStore(t *testing.T) {
	svc, paths := newService(t)

	id, err := svc.AddCustomer(AddCustomerParams{Name: "Jane Doe", Contact: codec.Encode("jane@x.com")})
	require.NoError(t, err)
	require.Equal(t, "1", id)

	txn, err := svc.AddTransaction("1", dec("12000.0"), "bob")
	require.NoError(t, err)

	txns := svc.Transactions()
	require.Len(t, txns, 1)
	assert.True(t, txns[0].Amount.Equal(dec("12000.0")))

	// Threshold flagging is the caller's concern; the amount must reproduce
	// exactly so the caller can apply it.
	threshold := dec("10000")
	assert.True(t, txn.Amount.GreaterThan(threshold))

	require.NoError(t, svc.Flush())
	reloaded := Open(paths)

	c, ok := reloaded.Customer("1")
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", c.Name)

	contact, err := codec.Decode(c.Contact)
	require.NoError(t, err)
	assert.Equal(t, "jane@x.com", contact)

	dir := filepath.Dir(paths.Customers)
	for _, name := range []string{"customers.json", "transactions.json", "credentials.json"} {
		_, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, "%s should exist after flush", name)
	}
}
