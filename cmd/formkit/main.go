// Command formkit lists registry bindings and validates, renders or
// interactively fills forms described by schema files.
package main

import (
	"os"

	"github.com/goliatone/go-formkit/cmd/formkit/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(commands.ExitCode(err))
	}
}
