// Command invapp manages a local SQLite inventory of books.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/invapp/internal/cli"
)

func main() {
	if err := cli.Execute(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		// ExitErrors were already reported by the command's formatter.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
