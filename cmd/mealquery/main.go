// Command mealquery builds, inspects and runs Boolean recipe queries.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/mealquery/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
