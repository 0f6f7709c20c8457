package main

import (
	"os"

	"github.com/SscSPs/accounting_backoffice/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
