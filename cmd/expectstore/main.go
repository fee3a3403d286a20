// expectstore is a CLI tool for inspecting validation artifact stores.
//
// Usage:
//
//	expectstore validate -f expectstore.yaml         # Check a config binds cleanly
//	expectstore stores -f expectstore.yaml           # List registered stores
//	expectstore show -f expectstore.yaml validations_store suite1 run7 batchabc validation_result
//
// All commands bind the configuration with the same fail-fast rules the
// library applies at startup, so "validate" exercising a config is exactly
// the check a deployment performs on boot.
package main

import (
	"os"

	"github.com/hupe1980/expectstore/cmd/expectstore/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
