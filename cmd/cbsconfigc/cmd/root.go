// Package cmd implements cbsconfigc, the tool that compiles a human-authored
// YAML client profile down to the binary config format cbsclientd loads.
package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// RootCmd is cbsconfigc's entry point.
var RootCmd = &cobra.Command{
	Use:   "cbsconfigc",
	Short: "compiles a YAML client profile into the binary client config format",
}

// Execute runs the command tree.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
