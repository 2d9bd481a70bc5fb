package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newExportCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the dashboard snapshot of the transaction list",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDesk(dir)
			if err != nil {
				return err
			}

			svc := d.openLedger()
			if err := svc.ExportDashboard(); err != nil {
				return err
			}

			fmt.Println("Dashboard snapshot written")
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "project directory")
	return cmd
}
