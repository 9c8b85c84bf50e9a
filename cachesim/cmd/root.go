// Package cmd provides the command-line interface for cachesim.
package cmd

import (
	"github.com/joho/godotenv"
	"github.com/tebeka/atexit"
)

// Execute loads the optional .env file, runs the root command and exits with
// a non-zero status on failure. Exiting goes through atexit so that data
// recorders flush.
func Execute() {
	_ = godotenv.Load()

	rootCmd := NewRootCommand()

	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
