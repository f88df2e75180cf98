package iosxe

import (
	"context"
	"fmt"

	"github.com/ispstack/pado-balancer/drivers/snmp"
	"github.com/ispstack/pado-balancer/types"
)

// Show commands issued per polling pass
const (
	cmdShowPPPoESummary = "show pppoe summary"
	cmdShowBbaConfig    = "show running-config | section bba-group"
)

// Adapter wraps a base driver with IOS-XE BRAS logic: fetching and
// parsing session/config state and pushing PADO delay batches.
// Configuration always goes through CLI; SNMP, when available, is used
// for read-only telemetry only.
type Adapter struct {
	baseDriver   types.Driver
	cliExecutor  types.CLIExecutor
	snmpExecutor types.SNMPExecutor
	config       *types.DeviceConfig
}

// NewAdapter creates a new IOS-XE adapter around a base driver
func NewAdapter(baseDriver types.Driver, config *types.DeviceConfig) *Adapter {
	adapter := &Adapter{
		baseDriver: baseDriver,
		config:     config,
	}

	if executor, ok := baseDriver.(types.CLIExecutor); ok {
		adapter.cliExecutor = executor
	}
	if executor, ok := baseDriver.(types.SNMPExecutor); ok {
		adapter.snmpExecutor = executor
	}

	return adapter
}

// AttachSNMP registers a secondary SNMP executor for telemetry
// cross-checks when the primary driver is CLI.
func (a *Adapter) AttachSNMP(executor types.SNMPExecutor) {
	a.snmpExecutor = executor
}

func (a *Adapter) Connect(ctx context.Context, config *types.DeviceConfig) error {
	return a.baseDriver.Connect(ctx, config)
}

func (a *Adapter) Disconnect(ctx context.Context) error {
	return a.baseDriver.Disconnect(ctx)
}

func (a *Adapter) IsConnected() bool {
	return a.baseDriver.IsConnected()
}

// FetchSessionSummary returns the raw output of "show pppoe summary"
func (a *Adapter) FetchSessionSummary(ctx context.Context) (string, error) {
	if a.cliExecutor == nil {
		return "", fmt.Errorf("CLI executor not available - IOS-XE requires CLI driver")
	}
	output, err := a.cliExecutor.ExecCommand(ctx, cmdShowPPPoESummary)
	if err != nil {
		return "", fmt.Errorf("failed to fetch pppoe summary: %w", err)
	}
	return output, nil
}

// FetchBbaConfig returns the raw bba-group section of the running config
func (a *Adapter) FetchBbaConfig(ctx context.Context) (string, error) {
	if a.cliExecutor == nil {
		return "", fmt.Errorf("CLI executor not available - IOS-XE requires CLI driver")
	}
	output, err := a.cliExecutor.ExecCommand(ctx, cmdShowBbaConfig)
	if err != nil {
		return "", fmt.Errorf("failed to fetch bba-group config: %w", err)
	}
	return output, nil
}

// Sessions fetches and parses the per-interface PPPoE session counts
func (a *Adapter) Sessions(ctx context.Context) ([]types.InterfaceSample, error) {
	raw, err := a.FetchSessionSummary(ctx)
	if err != nil {
		return nil, err
	}
	return ParseSessions(raw), nil
}

// CurrentDelays fetches and parses the PADO delay per bba-group
func (a *Adapter) CurrentDelays(ctx context.Context) (map[string]int, error) {
	raw, err := a.FetchBbaConfig(ctx)
	if err != nil {
		return nil, err
	}
	return ParseCurrentDelays(raw), nil
}

// Apply pushes a config command batch produced by ComputeChanges.
// An empty batch is a no-op.
func (a *Adapter) Apply(ctx context.Context, commands []string) error {
	if len(commands) == 0 {
		return nil
	}
	if a.cliExecutor == nil {
		return fmt.Errorf("CLI executor not available - IOS-XE requires CLI driver")
	}
	if err := a.cliExecutor.ApplyConfig(ctx, commands); err != nil {
		return fmt.Errorf("failed to apply pado delay batch: %w", err)
	}
	return nil
}

// TotalSessions reads the device-wide PPPoE session count over SNMP.
// Returns an error when no SNMP executor is attached.
func (a *Adapter) TotalSessions(ctx context.Context) (int64, error) {
	if a.snmpExecutor == nil {
		return 0, fmt.Errorf("SNMP executor not available")
	}

	value, err := a.snmpExecutor.GetSNMP(ctx, OIDPPPoECurrSessions)
	if err != nil {
		return 0, fmt.Errorf("failed to read session total: %w", err)
	}

	total, ok := snmp.ToInt64(value)
	if !ok {
		return 0, fmt.Errorf("unexpected SNMP value type %T for session total", value)
	}
	return total, nil
}
