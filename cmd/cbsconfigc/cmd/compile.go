package cmd

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cansec/cbs-client/hosted"
)

var (
	compileInFlag  string
	compileOutFlag string
)

func init() {
	RootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringVarP(&compileInFlag, "in", "i", "", "path to the YAML client profile")
	compileCmd.Flags().StringVarP(&compileOutFlag, "out", "o", "", "path to write the compiled binary config to")
	_ = compileCmd.MarkFlagRequired("in")
	_ = compileCmd.MarkFlagRequired("out")
}

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "compile a YAML profile into a binary client config file",
	RunE:  runCompile,
}

func runCompile(_ *cobra.Command, _ []string) error {
	profile, err := hosted.ReadYAMLProfile(compileInFlag)
	if err != nil {
		return fmt.Errorf("reading %q: %w", compileInFlag, err)
	}
	cfg, err := profile.Compile()
	if err != nil {
		return fmt.Errorf("compiling profile: %w", err)
	}
	if err := hosted.WriteConfigFile(compileOutFlag, cfg); err != nil {
		return fmt.Errorf("writing %q: %w", compileOutFlag, err)
	}
	log.Infof("wrote %s: %d groups", compileOutFlag, len(cfg.Groups))
	return nil
}
