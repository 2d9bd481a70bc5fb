package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerdesk-dev/ledgerdesk/internal/report"
)

func newReportCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write the per-customer CSV report",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDesk(dir)
			if err != nil {
				return err
			}

			svc := d.openLedger()
			path, err := report.Generate(d.reportsDir(), svc)
			if err != nil {
				return err
			}

			if err := d.openAudit().Record("Admin generated report"); err != nil {
				return err
			}

			d.log.Infow("report generated", "path", path)
			fmt.Printf("Report saved to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "project directory")
	return cmd
}
