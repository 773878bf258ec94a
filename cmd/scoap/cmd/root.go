package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
	logFile string
)

var rootCmd = &cobra.Command{
	Use:   "scoap",
	Short: "SCOAP testability analysis for gate-level circuits",
	Long: `scoap computes SCOAP testability metrics for a gate-level circuit:
combinational controllability (CC0/CC1) and observability (CO), their
sequential variants (SC0/SC1/SO), and structural forward/backward levels.

Examples:
  scoap analyze c17.bench                 # Print the metric table
  scoap analyze s27.bench -o report.txt   # Write the table to a file
  scoap analyze s27.bench --top 5 -v      # Also log the 5 hardest nets`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", "", "log file (default: stdout)")
}
