package main

import (
	"fmt"
	"os"

	"github.com/kilnbuild/kiln/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "kiln: %v\n", err)
		os.Exit(cmd.ExitCode(err))
	}
}
