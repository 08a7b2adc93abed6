package main

// Entry point: runs the root command and exits 1 only on usage or config errors.

import (
	"fmt"
	"os"

	"holders-csv/cmd/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
