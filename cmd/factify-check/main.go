// Command factify-check runs the fact-checking pipeline once from the terminal
package main

import (
	"os"

	"github.com/habibaehabb05/Factify/internal/platform/config"
	"github.com/habibaehabb05/Factify/internal/platform/logger"
)

func main() {
	config.LoadDotenv()

	// logs go to stderr so --json output stays pipeable
	opts := logger.FromEnv()
	opts.Writer = os.Stderr
	opts.Component = "cli"
	if opts.Level == "debug" && os.Getenv("LOG_LEVEL") == "" {
		opts.Level = "warn"
	}
	logger.Init(opts)

	if err := newRootCmd(defaultEnv()).Execute(); err != nil {
		os.Exit(1)
	}
}
