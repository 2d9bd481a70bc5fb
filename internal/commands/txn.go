package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ledgerdesk-dev/ledgerdesk/internal/importer"
	"github.com/ledgerdesk-dev/ledgerdesk/internal/model"
)

func newTxnCommand() *cobra.Command {
	txnCmd := &cobra.Command{
		Use:   "txn",
		Short: "Monetary transactions",
	}
	txnCmd.AddCommand(
		newTxnAddCommand(),
		newTxnEditCommand(),
		newTxnDeleteCommand(),
		newTxnListCommand(),
		newTxnImportCommand(),
	)
	return txnCmd
}

// parseAmount validates the amount before any mutation happens.
func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q", s)
	}
	return amount, nil
}

func newTxnAddCommand() *cobra.Command {
	var dir string
	var customerID, amountStr, operator string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction against a customer",
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(amountStr)
			if err != nil {
				return err
			}

			d, err := openDesk(dir)
			if err != nil {
				return err
			}

			svc := d.openLedger()
			txn, err := svc.AddTransaction(customerID, amount, operator)
			if err != nil {
				return err
			}

			if err := d.flush(svc, "txn: add for customer "+customerID); err != nil {
				return err
			}
			if err := svc.ExportDashboard(); err != nil {
				return err
			}

			action := fmt.Sprintf("Transaction added for customer %s: %s by %s", customerID, amount, operator)
			if err := d.openAudit().Record(action); err != nil {
				return err
			}

			d.log.Infow("transaction added", "customer_id", customerID, "amount", amount, "operator", operator)
			fmt.Printf("Transaction recorded at %s\n", txn.Timestamp)

			if txn.Amount.GreaterThan(d.suspiciousThreshold()) {
				d.log.Warnw("suspicious transaction", "customer_id", customerID, "amount", amount)
				fmt.Println("Warning: suspicious transaction detected")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "project directory")
	cmd.Flags().StringVar(&customerID, "customer", "", "customer id (required)")
	_ = cmd.MarkFlagRequired("customer")
	cmd.Flags().StringVar(&amountStr, "amount", "", "signed amount, negative = debit (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&operator, "operator", "", "staff login recording the transaction")

	return cmd
}

func newTxnEditCommand() *cobra.Command {
	var dir string
	var customerID, timestamp, amountStr string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Change the amount of a recorded transaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(amountStr)
			if err != nil {
				return err
			}

			d, err := openDesk(dir)
			if err != nil {
				return err
			}

			svc := d.openLedger()
			if err := svc.EditTransaction(customerID, timestamp, amount); err != nil {
				return err
			}

			if err := d.flush(svc, "txn: edit for customer "+customerID); err != nil {
				return err
			}

			d.log.Infow("transaction edited", "customer_id", customerID, "timestamp", timestamp, "amount", amount)
			fmt.Println("Transaction updated")
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "project directory")
	cmd.Flags().StringVar(&customerID, "customer", "", "customer id (required)")
	_ = cmd.MarkFlagRequired("customer")
	cmd.Flags().StringVar(&timestamp, "timestamp", "", "timestamp of the transaction (required)")
	_ = cmd.MarkFlagRequired("timestamp")
	cmd.Flags().StringVar(&amountStr, "amount", "", "new amount (required)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newTxnDeleteCommand() *cobra.Command {
	var dir string
	var customerID, timestamp string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Remove a recorded transaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDesk(dir)
			if err != nil {
				return err
			}

			svc := d.openLedger()
			if err := svc.DeleteTransaction(customerID, timestamp); err != nil {
				return err
			}

			if err := d.flush(svc, "txn: delete for customer "+customerID); err != nil {
				return err
			}

			d.log.Infow("transaction deleted", "customer_id", customerID, "timestamp", timestamp)
			fmt.Println("Transaction deleted")
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "project directory")
	cmd.Flags().StringVar(&customerID, "customer", "", "customer id (required)")
	_ = cmd.MarkFlagRequired("customer")
	cmd.Flags().StringVar(&timestamp, "timestamp", "", "timestamp of the transaction (required)")
	_ = cmd.MarkFlagRequired("timestamp")

	return cmd
}

func newTxnListCommand() *cobra.Command {
	var dir string
	var customerID, operator string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDesk(dir)
			if err != nil {
				return err
			}

			svc := d.openLedger()

			var txns []model.Transaction
			switch {
			case operator != "":
				txns = svc.TransactionsByStaff(operator)
			case customerID != "":
				c, ok := svc.Customer(customerID)
				if !ok {
					return fmt.Errorf("customer not found: %s", customerID)
				}
				txns = c.History
			default:
				txns = svc.Transactions()
			}

			for _, txn := range txns {
				recorder := "-"
				if txn.StaffUsername != nil {
					recorder = *txn.StaffUsername
				}
				fmt.Printf("%-6s %12s  %s  %s\n", txn.CustomerID, txn.Amount.StringFixed(2), txn.Timestamp, recorder)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "project directory")
	cmd.Flags().StringVar(&customerID, "customer", "", "only this customer's history")
	cmd.Flags().StringVar(&operator, "operator", "", "only transactions recorded by this login")

	return cmd
}

func newTxnImportCommand() *cobra.Command {
	var dir string
	var operator string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Record transactions from an intake CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := importer.ReadFile(args[0])
			if err != nil {
				return err
			}

			d, err := openDesk(dir)
			if err != nil {
				return err
			}

			// All rows are applied in memory before the single flush, so a
			// bad row rejects the whole file and nothing persists.
			svc := d.openLedger()
			for i, row := range rows {
				if _, err := svc.AddTransaction(row.CustomerID, row.Amount, operator); err != nil {
					return fmt.Errorf("row %d: %w", i+2, err)
				}
			}

			if err := d.flush(svc, fmt.Sprintf("txn: import %d transactions", len(rows))); err != nil {
				return err
			}
			if err := svc.ExportDashboard(); err != nil {
				return err
			}

			action := fmt.Sprintf("Imported %d transactions by %s", len(rows), operator)
			if err := d.openAudit().Record(action); err != nil {
				return err
			}

			d.log.Infow("transactions imported", "count", len(rows), "operator", operator)
			fmt.Printf("Imported %d transactions\n", len(rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "project directory")
	cmd.Flags().StringVar(&operator, "operator", "", "staff login recording the transactions")

	return cmd
}
