// Command trs parses, unifies and rewrites terms and runs Knuth-Bendix
// completion.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/trs/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
