// Command isolator sizes vibration isolators from the terminal.
package main

import (
	"fmt"
	"os"

	"Isolator/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
