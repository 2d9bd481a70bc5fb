package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDashboardCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Summarize customers and transaction activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDesk(dir)
			if err != nil {
				return err
			}

			svc := d.openLedger()
			txns := svc.Transactions()

			// Flagging by threshold is presentation-level; the ledger only
			// reproduces the amounts.
			threshold := d.suspiciousThreshold()
			suspicious := 0
			for _, txn := range txns {
				if txn.Amount.GreaterThan(threshold) {
					suspicious++
				}
			}

			fmt.Printf("Customers:          %d\n", svc.CustomerCount())
			fmt.Printf("Transactions:       %d\n", len(txns))
			fmt.Printf("Total volume:       %s\n", svc.TotalVolume().StringFixed(2))
			fmt.Printf("Suspicious (> %s): %d\n", threshold, suspicious)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "project directory")
	return cmd
}
