package main

import (
	"os"

	"github.com/rubicon-docs/docsite/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
