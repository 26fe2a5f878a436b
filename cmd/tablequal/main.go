// main is the entry point for the tablequal CLI.
package main

import (
	"os"

	"github.com/calderasa/tablequal/cmd"
	"github.com/calderasa/tablequal/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogWarn("Command failed", err)
		os.Exit(1)
	}
}
