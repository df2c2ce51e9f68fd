// Package cmd implements the cbsclientd command-line surface, grounded on
// the teacher's calnex/cmd.RootCmd pattern: a package-level *cobra.Command
// that subcommand files register themselves onto from their own init().
package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// RootCmd is cbsclientd's entry point.
var RootCmd = &cobra.Command{
	Use:   "cbsclientd",
	Short: "runs a CAN Bus Security client over a configured transport",
}

var verboseFlag bool

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "verbose logging")
}

// Execute runs the command tree; it's the only symbol main needs to call.
func Execute() {
	log.SetLevel(log.InfoLevel)
	// Flags are parsed inside RootCmd.Execute, so the level is chosen in a
	// pre-run hook that sees the parsed --verbose value.
	RootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if verboseFlag {
			log.SetLevel(log.DebugLevel)
		}
	}
	if err := RootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
