package main

import (
	"os"

	"github.com/ledgerdesk-dev/ledgerdesk/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
