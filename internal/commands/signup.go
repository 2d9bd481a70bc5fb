package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerdesk-dev/ledgerdesk/internal/codec"
	"github.com/ledgerdesk-dev/ledgerdesk/internal/ledger"
)

func newSignupCommand() *cobra.Command {
	var dir string
	var username, password, name, contact, role string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a login, and a customer record for staff",
		RunE: func(cmd *cobra.Command, args []string) error {
			if role != "staff" && role != "admin" {
				return fmt.Errorf("invalid role %q", role)
			}

			d, err := openDesk(dir)
			if err != nil {
				return err
			}

			svc := d.openLedger()
			if err := svc.AddCredential(username, codec.Encode(password)); err != nil {
				return err
			}

			// Staff signups get a customer record of their own; the id
			// follows the same count-plus-one rule as any other customer.
			if role == "staff" {
				id, err := svc.AddCustomer(ledger.AddCustomerParams{
					Name:     name,
					Contact:  codec.Encode(contact),
					Staff:    true,
					Username: username,
				})
				if err != nil {
					return err
				}
				fmt.Printf("Staff customer record created with id %s\n", id)
			}

			if err := d.flush(svc, "signup: "+username); err != nil {
				return err
			}

			d.log.Infow("signup", "username", username, "role", role)
			fmt.Printf("Account %s created\n", username)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "project directory")
	cmd.Flags().StringVar(&username, "username", "", "login name (required)")
	_ = cmd.MarkFlagRequired("username")
	cmd.Flags().StringVar(&password, "password", "", "password (required)")
	_ = cmd.MarkFlagRequired("password")
	cmd.Flags().StringVar(&name, "name", "", "full name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&contact, "contact", "", "contact info")
	cmd.Flags().StringVar(&role, "role", "staff", "role: staff or admin")

	return cmd
}
