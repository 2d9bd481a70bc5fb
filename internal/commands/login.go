package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerdesk-dev/ledgerdesk/internal/auth"
)

func newLoginCommand() *cobra.Command {
	var dir string
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check credentials and report the role",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDesk(dir)
			if err != nil {
				return err
			}

			svc := d.openLedger()
			role, err := auth.Authenticate(svc, username, password)
			if err != nil {
				return err
			}

			d.log.Infow("login", "username", username, "role", role)
			fmt.Printf("Logged in as %s (%s)\n", username, role)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "project directory")
	cmd.Flags().StringVar(&username, "username", "", "login name (required)")
	_ = cmd.MarkFlagRequired("username")
	cmd.Flags().StringVar(&password, "password", "", "password (required)")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
