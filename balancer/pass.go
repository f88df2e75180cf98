package balancer

import (
	"context"
	"fmt"

	"github.com/ispstack/pado-balancer/iosxe"
	"github.com/ispstack/pado-balancer/types"
	"go.uber.org/zap"
)

// Device is the orchestrator boundary the pass needs from a BRAS: fetch
// parsed session and config state, push a command batch. *iosxe.Adapter
// implements it.
type Device interface {
	Sessions(ctx context.Context) ([]types.InterfaceSample, error)
	CurrentDelays(ctx context.Context) (map[string]int, error)
	Apply(ctx context.Context, commands []string) error
}

// Options controls a single device pass
type Options struct {
	// DryRun computes and reports the batch without applying it
	DryRun bool
}

// InterfaceReport records the classification of one interface
type InterfaceReport struct {
	Interface string
	Number    string
	Sessions  int
	Delay     int
}

// Report summarizes one device pass
type Report struct {
	Interfaces []InterfaceReport
	Commands   []string
	Applied    bool
}

// Run performs one polling pass over a single device, strictly ordered:
// fetch session summary, fetch current config, classify, diff, apply.
// Any fetch or apply error abandons the pass; a partial batch is never
// sent when the current-state fetch failed.
func Run(ctx context.Context, log *zap.Logger, dev Device, ladder ThresholdLadder, opts Options) (*Report, error) {
	samples, err := dev.Sessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("session summary fetch failed: %w", err)
	}

	current, err := dev.CurrentDelays(ctx)
	if err != nil {
		return nil, fmt.Errorf("bba config fetch failed: %w", err)
	}

	report := &Report{Interfaces: make([]InterfaceReport, 0, len(samples))}
	desired := make([]iosxe.InterfaceDelay, 0, len(samples))

	for _, sample := range samples {
		number, err := iosxe.InterfaceNumber(sample.Interface)
		if err != nil {
			return nil, err
		}

		delay := ladder.Classify(sample.Sessions)
		desired = append(desired, iosxe.InterfaceDelay{Interface: sample.Interface, Delay: delay})
		report.Interfaces = append(report.Interfaces, InterfaceReport{
			Interface: sample.Interface,
			Number:    number,
			Sessions:  sample.Sessions,
			Delay:     delay,
		})

		log.Debug("classified interface",
			zap.String("interface", sample.Interface),
			zap.Int("sessions", sample.Sessions),
			zap.Int("pado_delay", delay))
	}

	batch, err := iosxe.ComputeChanges(desired, current)
	if err != nil {
		return nil, fmt.Errorf("delay diff failed: %w", err)
	}
	report.Commands = batch

	if len(batch) == 0 {
		log.Info("pado delays already converged", zap.Int("interfaces", len(samples)))
		return report, nil
	}

	if opts.DryRun {
		log.Info("dry run, not applying",
			zap.Int("interfaces", len(samples)),
			zap.Strings("commands", batch))
		return report, nil
	}

	if err := dev.Apply(ctx, batch); err != nil {
		return nil, fmt.Errorf("apply failed: %w", err)
	}
	report.Applied = true

	log.Info("pado delays updated",
		zap.Int("interfaces", len(samples)),
		zap.Int("commands", len(batch)))

	return report, nil
}
