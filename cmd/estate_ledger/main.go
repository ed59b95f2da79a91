package main

import (
	"os"

	"github.com/aqarfin/estate_ledger/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
