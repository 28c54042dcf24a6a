package main

import (
	"fmt"
	"os"

	"credvault/cmd/credvault/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "credvault:", commands.Describe(err))
		os.Exit(commands.ExitCode(err))
	}
}
