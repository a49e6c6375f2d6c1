package main

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mernstack/mernctl/internal/cli"
)

func main() {
	logLevel := log.InfoLevel
	switch strings.ToUpper(os.Getenv("LOG_LEVEL")) {
	case "DEBUG":
		logLevel = log.DebugLevel
	case "ERROR":
		logLevel = log.ErrorLevel
	}

	log.SetLevel(logLevel)
	log.SetReportTimestamp(true)

	// Create and execute the root command
	rootCmd := cli.NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
