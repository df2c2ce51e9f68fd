package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cansec/cbs-client/client"
	"github.com/cansec/cbs-client/clientmetrics"
	"github.com/cansec/cbs-client/hosted"
	"github.com/cansec/cbs-client/slcantransport"
)

var (
	runConfigFlag      string
	runDeviceFlag      string
	runBaudFlag        int
	runCanIDFlag       uint32
	runMetricsPortFlag int
	runWatchdogFlag    time.Duration
)

func init() {
	RootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runConfigFlag, "config", "c", "", "path to a binary (HZL) client config file")
	runCmd.Flags().StringVarP(&runDeviceFlag, "device", "d", "/dev/ttyACM0", "slcan serial device")
	runCmd.Flags().IntVar(&runBaudFlag, "baud", 115200, "serial baud rate for the slcan device")
	runCmd.Flags().Uint32Var(&runCanIDFlag, "can-id", 0x100, "CAN arbitration id to transmit frames under")
	runCmd.Flags().IntVar(&runMetricsPortFlag, "metrics-port", 4290, "port to serve Prometheus metrics on, 0 disables")
	runCmd.Flags().DurationVar(&runWatchdogFlag, "watchdog-interval", 10*time.Second, "systemd watchdog notify period")
	_ = runCmd.MarkFlagRequired("config")
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "run the CBS client against a live slcan transport",
	RunE:  runRun,
}

func runRun(_ *cobra.Command, _ []string) error {
	cfg, err := hosted.LoadConfigFile(runConfigFlag)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	reg := prometheus.NewRegistry()
	promObserver := clientmetrics.NewPrometheusObserver(reg)
	observer := multiObserver{promObserver, clientmetrics.LoggingObserver{}}

	ctx, err := client.New(cfg, hosted.OSClock{}, hosted.OSTRNG{}, observer)
	if err != nil {
		return fmt.Errorf("constructing client: %w", err)
	}
	defer ctx.Deinit()

	transport, err := slcantransport.Open(runDeviceFlag, runBaudFlag)
	if err != nil {
		return fmt.Errorf("opening transport: %w", err)
	}
	defer transport.Close()

	if runMetricsPortFlag != 0 {
		go func() {
			http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true}))
			log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", runMetricsPortFlag), nil))
		}()
	}

	for _, g := range cfg.Groups {
		req, err := ctx.BuildRequest(g.Gid)
		if err != nil {
			log.Warningf("gid=%d: starting handshake: %v", g.Gid, err)
			continue
		}
		if err := transport.Send(runCanIDFlag, req); err != nil {
			log.Warningf("gid=%d: sending REQ: %v", g.Gid, err)
		}
	}

	if err := hosted.NotifyReady(); err != nil {
		log.Debugf("systemd notify-ready: %v", err)
	}
	go watchdogLoop(runWatchdogFlag)

	for {
		canID, raw, err := transport.Receive()
		if err != nil {
			return fmt.Errorf("transport receive: %w", err)
		}
		data, reaction, err := ctx.ProcessReceived(raw, canID)
		if err != nil {
			log.Debugf("dropping frame: %v", err)
		}
		if data.IsForUser {
			log.Infof("gid=%d sid=%d: %d bytes of application data", data.Gid, data.Sid, len(data.Sdu))
		}
		if len(reaction) > 0 {
			if err := transport.Send(runCanIDFlag, reaction); err != nil {
				log.Warningf("sending reaction frame: %v", err)
			}
		}
	}
}

func watchdogLoop(interval time.Duration) {
	if interval <= 0 {
		return
	}
	for range time.Tick(interval) {
		if err := hosted.NotifyWatchdog(); err != nil {
			log.Debugf("systemd watchdog notify: %v", err)
		}
	}
}

// multiObserver fans every callback out to each of its members in order,
// so the daemon can run the Prometheus and logging observers side by side
// without client.Context knowing there's more than one.
type multiObserver []client.Observer

func (m multiObserver) OnHandshakeStarted(gid uint8) {
	for _, o := range m {
		o.OnHandshakeStarted(gid)
	}
}

func (m multiObserver) OnHandshakeEstablished(gid uint8) {
	for _, o := range m {
		o.OnHandshakeEstablished(gid)
	}
}

func (m multiObserver) OnRenewalOverlapEntered(gid uint8) {
	for _, o := range m {
		o.OnRenewalOverlapEntered(gid)
	}
}

func (m multiObserver) OnRenewalOverlapExited(gid uint8) {
	for _, o := range m {
		o.OnRenewalOverlapExited(gid)
	}
}

func (m multiObserver) OnRejected(gid uint8, reason client.Error) {
	for _, o := range m {
		o.OnRejected(gid, reason)
	}
}

var _ client.Observer = multiObserver(nil)
