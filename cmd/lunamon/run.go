package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/LisaRowell/LunaMonESP-sub001/internal/bridges"
	"github.com/LisaRowell/LunaMonESP-sub001/internal/datamodel"
	"github.com/LisaRowell/LunaMonESP-sub001/internal/logging"
	"github.com/LisaRowell/LunaMonESP-sub001/internal/metrics"
	"github.com/LisaRowell/LunaMonESP-sub001/internal/mqtt/broker"
	"github.com/LisaRowell/LunaMonESP-sub001/internal/sensors"
	"github.com/LisaRowell/LunaMonESP-sub001/internal/sources"
)

// statsInterval is how often the broker's diagnostic leaves and the
// Prometheus gauges backing them are refreshed.
const statsInterval = 5 * time.Second

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the gateway until interrupted",
	RunE:  runGateway,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runGateway(cmd *cobra.Command, args []string) error {
	log := logging.ForComponent("lunamon")
	cfg := loadConfig(log)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tree := datamodel.NewTree(cfg.MQTT.MaxClients)
	bridgeSet := bridges.NewSet(tree, cfg.Navaid.MaxTracked, logging.ForComponent("bridges"))

	mqttBroker := broker.NewBroker(cfg.MQTT.ListenAddr, cfg.MQTT.MaxClients, tree, logging.ForComponent("broker"))
	exporter := metrics.NewExporter(mqttBroker)

	// No I²C bus driver is wired in yet; the poller idles with both
	// sensors reporting absent until one is injected here.
	poller := sensors.NewPoller(tree, nil, nil, cfg.Sensors.PollInterval, logging.ForComponent("sensors"))

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("mqtt broker listening", "addr", cfg.MQTT.ListenAddr)
		return mqttBroker.Run(ctx)
	})
	group.Go(func() error {
		return mqttBroker.RunStats(ctx, statsInterval)
	})
	group.Go(func() error {
		log.Info("metrics endpoint listening", "addr", cfg.Metrics.ListenAddr)
		return exporter.Run(ctx, cfg.Metrics.ListenAddr)
	})
	group.Go(func() error {
		return poller.Run(ctx)
	})

	for _, addr := range cfg.Sources.TCP {
		source := sources.NewTCPSource(addr, bridgeSet, logging.ForComponent("source"))
		group.Go(func() error {
			return source.Run(ctx)
		})
	}

	if err := group.Wait(); err != nil && ctx.Err() == nil {
		return err
	}
	log.Info("shutdown complete")
	return nil
}
