package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ledgerdesk-dev/ledgerdesk/internal/codec"
	"github.com/ledgerdesk-dev/ledgerdesk/internal/config"
	"github.com/ledgerdesk-dev/ledgerdesk/internal/gitops"
	"github.com/ledgerdesk-dev/ledgerdesk/internal/ledger"
)

func newInitCommand() *cobra.Command {
	var name string
	var adminPassword string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new ledgerdesk project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, name, adminPassword)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&adminPassword, "admin-password", "", "password for the reserved admin login (required)")
	_ = cmd.MarkFlagRequired("admin-password")

	return cmd
}

func runInit(dir, name, adminPassword string) error {
	cfg := config.Default(name)

	for _, d := range []string{cfg.Storage.DataDir, cfg.Storage.ReportsDir} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Seed the documents with the admin credential so a fresh project is
	// immediately usable.
	dataDir := filepath.Join(dir, cfg.Storage.DataDir)
	svc := ledger.Open(ledger.DefaultPaths(dataDir))
	if err := svc.AddCredential("admin", codec.Encode(adminPassword)); err != nil {
		return err
	}
	if err := svc.Flush(); err != nil {
		return fmt.Errorf("writing documents: %w", err)
	}

	// Reports are derived from the documents; keep them out of version
	// control.
	gitignore := cfg.Storage.ReportsDir + "/\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	if cfg.Git.AutoCommit {
		if err := gitops.Init(dir); err != nil {
			return fmt.Errorf("git init: %w", err)
		}
		if _, err := gitops.CommitAll(dir, "init: "+name, cfg.Git.AuthorName, cfg.Git.AuthorEmail); err != nil {
			return fmt.Errorf("initial commit: %w", err)
		}
	}

	fmt.Printf("Initialized %s at %s\n", name, dir)
	return nil
}
