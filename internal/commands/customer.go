package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerdesk-dev/ledgerdesk/internal/codec"
	"github.com/ledgerdesk-dev/ledgerdesk/internal/ledger"
)

func newCustomerCommand() *cobra.Command {
	customerCmd := &cobra.Command{
		Use:   "customer",
		Short: "Customer profiles",
	}
	customerCmd.AddCommand(newCustomerAddCommand(), newCustomerListCommand())
	return customerCmd
}

func newCustomerAddCommand() *cobra.Command {
	var dir string
	var name, contact string
	var staff bool
	var username, password string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a customer profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if staff && (username == "" || password == "") {
				return errors.New("username and password are required for staff accounts")
			}

			d, err := openDesk(dir)
			if err != nil {
				return err
			}

			svc := d.openLedger()

			// Credential pairing is this caller's job, not the ledger's.
			// Creating it first means a taken username aborts before the
			// customer record exists.
			if staff {
				if err := svc.AddCredential(username, codec.Encode(password)); err != nil {
					return err
				}
			}

			id, err := svc.AddCustomer(ledger.AddCustomerParams{
				Name:     name,
				Contact:  codec.Encode(contact),
				Staff:    staff,
				Username: username,
			})
			if err != nil {
				return err
			}

			if err := d.flush(svc, "customer: add "+name); err != nil {
				return err
			}

			action := "Customer added: " + name
			if staff {
				action += " (staff account)"
			}
			if err := d.openAudit().Record(action); err != nil {
				return err
			}

			d.log.Infow("customer added", "id", id, "staff", staff)
			fmt.Printf("Customer %s added with id %s\n", name, id)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "project directory")
	cmd.Flags().StringVar(&name, "name", "", "full name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&contact, "contact", "", "contact info (required)")
	_ = cmd.MarkFlagRequired("contact")
	cmd.Flags().BoolVar(&staff, "staff", false, "also create a staff login")
	cmd.Flags().StringVar(&username, "username", "", "staff login name")
	cmd.Flags().StringVar(&password, "password", "", "staff password")

	return cmd
}

func newCustomerListCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List customer profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDesk(dir)
			if err != nil {
				return err
			}

			svc := d.openLedger()
			for _, id := range svc.CustomerIDs() {
				c, ok := svc.Customer(id)
				if !ok {
					continue
				}
				contact, err := codec.Decode(c.Contact)
				if err != nil {
					return fmt.Errorf("decoding contact for customer %s: %w", id, err)
				}
				fmt.Printf("%-6s %-24s %s\n", id, c.Name, contact)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "project directory")
	return cmd
}
