package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAuditCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show the audit trail, oldest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDesk(dir)
			if err != nil {
				return err
			}

			for _, entry := range d.openAudit().Entries() {
				fmt.Printf("%s - %s\n", entry.Timestamp, entry.Action)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "project directory")
	return cmd
}
