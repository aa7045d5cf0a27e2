// Package main is the entry point for the skillet CLI.
package main

import (
	"os"

	"github.com/runger/skillet/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
