// Package cli provides the command-line interface for m3crack.
package cli

import (
	"fmt"

	"github.com/coredds/m3crack"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "m3crack",
	Short: "Ciphertext-only cryptanalysis of three-rotor M3 Naval Enigma messages",
	Long: `m3crack recovers the wheel order, ring settings, rotor positions and
plugboard of a three-rotor M3 Naval Enigma message from ciphertext alone,
using the Gillogly/Williams hill-climbing attack: an Index-of-Coincidence
search over wheel order and position, ring optimization on the two
fastest rotors, and a greedy n-gram plugboard hill-climb.

Examples:
  m3crack crack --text "VQSFHVLXCAWCYZZ..."
  m3crack crack --file message.txt --json
  cat message.txt | m3crack crack`,
	Version: m3crack.GetVersion(),
}

// Execute runs the root command and handles errors.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(crackCmd)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
}

// setupVerbose configures verbose logging if enabled.
func setupVerbose(cmd *cobra.Command) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Println("Verbose mode enabled")
	}
}
