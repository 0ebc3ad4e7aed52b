// Package main is the entry point for the bdx CLI tool.
package main

import (
	"os"

	"braindex/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
