// Package main provides the m3crack command-line interface.
package main

import (
	"os"

	"github.com/coredds/m3crack/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
