package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	padobalancer "github.com/ispstack/pado-balancer"
	"github.com/ispstack/pado-balancer/balancer"
	"github.com/ispstack/pado-balancer/config"
	"github.com/ispstack/pado-balancer/iosxe"
	"github.com/ispstack/pado-balancer/metrics"
	"github.com/ispstack/pado-balancer/retry"
	"github.com/ispstack/pado-balancer/types"
)

const (
	connectAttempts   = 3
	connectRetryDelay = 5 * time.Second
)

var log *zap.Logger

func main() {
	configFile := flag.String("config.file", "pppoe-balancer.yml", "path to configuration file")
	dryRun := flag.Bool("dry-run", false, "compute and log command batches without applying them")
	once := flag.Bool("once", false, "run a single sweep and exit, regardless of the configured interval")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := zap.InfoLevel
	if *debug {
		level = zap.DebugLevel
	}

	zapConfig := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	log, _ = zapConfig.Build()
	defer log.Sync()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal("error loading config", zap.Error(err))
	}

	tiers := make([]balancer.Tier, 0, len(cfg.Thresholds))
	for _, threshold := range cfg.Thresholds {
		tiers = append(tiers, balancer.Tier{Boundary: threshold.Sessions, Delay: threshold.Delay})
	}
	ladder, err := balancer.NewLadder(tiers)
	if err != nil {
		log.Fatal("invalid threshold ladder", zap.Error(err))
	}

	log.Info("starting pppoe-balancer",
		zap.String("username", cfg.SSH.Username),
		zap.Int("devices", len(cfg.Devices)),
		zap.Any("thresholds", cfg.Thresholds),
		zap.Bool("dry_run", *dryRun))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Listen != "" {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			log.Info("starting metrics listener", zap.String("listen", cfg.Listen))
			if err := http.ListenAndServe(cfg.Listen, nil); err != nil {
				log.Error("metrics listener failed", zap.Error(err))
			}
		}()
	}

	opts := balancer.Options{DryRun: *dryRun}

	if *once || cfg.PollInterval() == 0 {
		if failed := sweep(ctx, cfg, ladder, opts); failed > 0 {
			os.Exit(1)
		}
		return
	}

	ticker := time.NewTicker(cfg.PollInterval())
	defer ticker.Stop()

	sweep(ctx, cfg, ladder, opts)
	for {
		select {
		case <-ctx.Done():
			log.Info("shutting down")
			return
		case <-ticker.C:
			sweep(ctx, cfg, ladder, opts)
		}
	}
}

// sweep runs one pass over every configured device, sequentially, and
// returns the number of devices that had to be skipped. Devices are
// fully isolated: a failure on one never blocks the next.
func sweep(ctx context.Context, cfg *config.Config, ladder balancer.ThresholdLadder, opts balancer.Options) int {
	ips := make([]string, 0, len(cfg.Devices))
	for ip := range cfg.Devices {
		ips = append(ips, ip)
	}
	sort.Strings(ips)

	failed := 0
	for _, ip := range ips {
		if ctx.Err() != nil {
			return failed
		}
		if err := processDevice(ctx, cfg, ladder, opts, ip, cfg.Devices[ip]); err != nil {
			log.Error("device skipped", zap.String("device", cfg.Devices[ip]), zap.String("address", ip), zap.Error(err))
			failed++
		}
	}
	return failed
}

// processDevice connects to one BRAS, runs a balancing pass and records
// metrics. Connection attempts are bounded; a device that stays
// unreachable is skipped, not fatal.
func processDevice(ctx context.Context, cfg *config.Config, ladder balancer.ThresholdLadder, opts balancer.Options, ip, label string) error {
	devLog := log.With(zap.String("device", label), zap.String("address", ip))

	devConfig := &types.DeviceConfig{
		Name:     label,
		Address:  ip,
		Port:     cfg.SSH.Port,
		Protocol: types.ProtocolCLI,
		Username: cfg.SSH.Username,
		Password: cfg.SSH.Password,
		Timeout:  cfg.SSHTimeout(),
	}

	driver, err := padobalancer.NewDriver(types.ProtocolCLI, devConfig)
	if err != nil {
		return fmt.Errorf("driver setup failed: %w", err)
	}

	devLog.Debug("connecting")
	err = retry.Do(ctx, connectAttempts, connectRetryDelay, func(ctx context.Context) error {
		return driver.Connect(ctx, nil)
	})
	if err != nil {
		metrics.PassSuccess.WithLabelValues(label).Set(0)
		return fmt.Errorf("connect failed: %w", err)
	}
	defer driver.Disconnect(ctx)
	devLog.Debug("authenticated")

	adapter := iosxe.NewAdapter(driver, devConfig)
	snmpDisconnect := attachSNMP(ctx, devLog, cfg, adapter, ip, label)
	if snmpDisconnect != nil {
		defer snmpDisconnect()
	}

	start := time.Now()
	report, err := balancer.Run(ctx, devLog, adapter, ladder, opts)
	metrics.PassDuration.WithLabelValues(label).Set(time.Since(start).Seconds())
	if err != nil {
		metrics.PassSuccess.WithLabelValues(label).Set(0)
		return err
	}
	metrics.PassSuccess.WithLabelValues(label).Set(1)

	for _, iface := range report.Interfaces {
		metrics.InterfaceSessions.WithLabelValues(label, iface.Interface).Set(float64(iface.Sessions))
		metrics.InterfaceDelay.WithLabelValues(label, iface.Interface).Set(float64(iface.Delay))
	}
	if report.Applied {
		metrics.CommandsApplied.WithLabelValues(label).Add(float64(len(report.Commands)))
	}

	if total, err := adapter.TotalSessions(ctx); err == nil {
		metrics.DeviceSessions.WithLabelValues(label).Set(float64(total))
		devLog.Debug("snmp session total", zap.Int64("sessions", total))
	}

	devLog.Info("pass complete", zap.String("summary", summarize(report)))
	return nil
}

// attachSNMP wires an optional read-only SNMP executor onto the adapter.
// SNMP problems are never fatal: the balancer works from CLI state alone.
func attachSNMP(ctx context.Context, devLog *zap.Logger, cfg *config.Config, adapter *iosxe.Adapter, ip, label string) func() {
	if !cfg.SNMP.Enabled {
		return nil
	}

	snmpConfig := &types.DeviceConfig{
		Name:     label,
		Address:  ip,
		Port:     cfg.SNMP.Port,
		Protocol: types.ProtocolSNMP,
		Timeout:  cfg.SNMPTimeout(),
		Metadata: map[string]string{"snmp_community": cfg.SNMP.Community},
	}

	driver, err := padobalancer.NewDriver(types.ProtocolSNMP, snmpConfig)
	if err != nil {
		devLog.Warn("snmp driver setup failed", zap.Error(err))
		return nil
	}
	if err := driver.Connect(ctx, nil); err != nil {
		devLog.Warn("snmp connect failed", zap.Error(err))
		return nil
	}

	if executor, ok := driver.(types.SNMPExecutor); ok {
		adapter.AttachSNMP(executor)
	}
	return func() { driver.Disconnect(ctx) }
}

// summarize renders the per-interface outcome in one log-friendly line,
// e.g. "0/1/2: PADO=256, 0/1/3: PADO=512"
func summarize(report *balancer.Report) string {
	parts := make([]string, 0, len(report.Interfaces))
	for _, iface := range report.Interfaces {
		parts = append(parts, fmt.Sprintf("%s: PADO=%d", iface.Number, iface.Delay))
	}
	if len(parts) == 0 {
		return "no pppoe interfaces"
	}
	return strings.Join(parts, ", ")
}
