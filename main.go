// Package main is the entry point for the jit CLI application.
package main

import (
	"fmt"
	"os"

	"github.com/danielolaszy/jit/cmd"
	"github.com/danielolaszy/jit/internal/logging"
)

// main executes the root command and exits non-zero on any error.
func main() {
	logging.Debug("starting jit", "version", cmd.Version, "log_level", logging.LevelFromEnv())

	if err := cmd.Execute(); err != nil {
		logging.Debug("command execution failed", "error", err)
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
