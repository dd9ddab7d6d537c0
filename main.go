// =============================================================================
// Sales Import - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Sales Import CLI application. It
// initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   sales-import export        - Export all normalized sales datasets
//   sales-import version       - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Core business logic (not for external import)
//   - pkg/           : Shared utilities
//
// =============================================================================

package main

import (
	"github.com/fujipos/sales-import/cmd"
)

func main() {
	cmd.Execute()
}
