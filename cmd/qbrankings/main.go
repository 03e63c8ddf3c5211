// Command qbrankings is the NFL quarterback stats pipeline CLI.
package main

import (
	"os"

	"qbrankings/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
