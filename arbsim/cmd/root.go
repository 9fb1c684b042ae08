// Package cmd provides the command-line interface of arbsim.
package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// Environment variables that provide flag defaults. They can also be set in a
// .env file in the working directory.
const (
	envLogLevel    = "ARBSIM_LOG_LEVEL"
	envMonitorPort = "ARBSIM_MONITOR_PORT"
	envRecord      = "ARBSIM_RECORD"
)

// NewRootCmd creates the arbsim command with all its subcommands.
func NewRootCmd() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "arbsim",
		Short: "Arbsim runs and verifies two-requester arbiters.",
		Long: `Arbsim decides, once per tick, which of two requesters gets a ` +
			`shared resource. It can run request scripts through a fixed-` +
			`priority or a round-robin arbiter and exhaustively check the ` +
			`arbitration invariants.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}

			logrus.SetLevel(level)

			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level",
		envOr(envLogLevel, "warn"),
		"Log level (trace, debug, info, warn, error, fatal, panic)")

	rootCmd.AddCommand(newVerifyCmd())
	rootCmd.AddCommand(newTableCmd())
	rootCmd.AddCommand(newRunCmd())

	return rootCmd
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		logrus.Warnf("cannot load .env: %v", err)
	}

	err = NewRootCmd().Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}

	return fallback
}
