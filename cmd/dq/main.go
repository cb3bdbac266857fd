// Command dq serves and manages a question store partitioned by user and week.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/dq/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
