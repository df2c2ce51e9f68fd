package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/cansec/cbs-client/hosted"
)

var dumpConfigFlag string

func init() {
	RootCmd.AddCommand(dumpCmd)
	dumpCmd.Flags().StringVarP(&dumpConfigFlag, "config", "c", "", "path to a binary (HZL) client config file")
	_ = dumpCmd.MarkFlagRequired("config")
}

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "print the groups configured in a client config file",
	RunE:  runDump,
}

func runDump(_ *cobra.Command, _ []string) error {
	cfg, err := hosted.LoadConfigFile(dumpConfigFlag)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	fmt.Printf("sid=%d header_type=%d timeout_req_to_res_ms=%d\n", cfg.Sid, cfg.HeaderType, cfg.TimeoutReqToResMS)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"gid", "max_ctrnonce_delay_msgs", "max_silence_interval_ms", "session_renewal_duration_ms"})
	for _, g := range cfg.Groups {
		table.Append([]string{
			fmt.Sprintf("%d", g.Gid),
			fmt.Sprintf("%d", g.MaxCtrNonceDelayMsgs),
			fmt.Sprintf("%d", g.MaxSilenceIntervalMS),
			fmt.Sprintf("%d", g.SessionRenewalDurationMS),
		})
	}
	table.Render()
	return nil
}
