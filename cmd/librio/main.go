package main

import (
	"fmt"
	"os"

	"librio/internal/cli"
)

func main() {
	if err := cli.New().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "librio: %v\n", err)
		os.Exit(1)
	}
}
