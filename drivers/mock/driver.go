package mock

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/ispstack/pado-balancer/types"
)

var (
	reSetGroup = regexp.MustCompile(`^bba-group pppoe (\S+)$`)
	reSetDelay = regexp.MustCompile(`^pado delay (\d+)$`)
)

// Driver simulates an IOS-XE BRAS without connecting to real equipment.
// It renders show output from in-memory state and folds applied config
// batches back into that state, so convergence behavior can be tested
// end to end.
type Driver struct {
	config    *types.DeviceConfig
	connected bool
	mu        sync.RWMutex

	// interfaces in summary display order
	interfaces []types.InterfaceSample
	// delays per bba-group
	delays map[string]int
	// applied config batches, oldest first
	applied [][]string
}

// NewDriver creates a new mock driver
func NewDriver(config *types.DeviceConfig) (types.Driver, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}

	return &Driver{
		config: config,
		delays: make(map[string]int),
	}, nil
}

// SetInterfaces seeds the simulated PPPoE summary
func (d *Driver) SetInterfaces(samples []types.InterfaceSample) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.interfaces = append([]types.InterfaceSample(nil), samples...)
}

// SetDelay seeds the simulated bba-group config
func (d *Driver) SetDelay(group string, delay int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.delays[group] = delay
}

// Applied returns every config batch pushed so far
func (d *Driver) Applied() [][]string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([][]string(nil), d.applied...)
}

// Connect simulates connecting to the device
func (d *Driver) Connect(ctx context.Context, config *types.DeviceConfig) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if config != nil {
		d.config = config
	}
	d.connected = true
	return nil
}

// Disconnect simulates disconnecting
func (d *Driver) Disconnect(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.connected = false
	return nil
}

// IsConnected returns true if connected
func (d *Driver) IsConnected() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.connected
}

// HealthCheck always succeeds while connected
func (d *Driver) HealthCheck(ctx context.Context) error {
	if !d.IsConnected() {
		return fmt.Errorf("not connected to device")
	}
	return nil
}

// ExecCommand renders show output from the simulated state
func (d *Driver) ExecCommand(ctx context.Context, command string) (string, error) {
	if !d.IsConnected() {
		return "", fmt.Errorf("not connected to device")
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	switch command {
	case "show pppoe summary":
		return d.renderSummary(), nil
	case "show running-config | section bba-group":
		return d.renderBbaConfig(), nil
	case "show clock":
		return "10:42:17.101 UTC Tue Aug 25 2026", nil
	default:
		return "", fmt.Errorf("mock driver does not implement command %q", command)
	}
}

// ExecCommands executes multiple commands sequentially
func (d *Driver) ExecCommands(ctx context.Context, commands []string) ([]string, error) {
	results := make([]string, 0, len(commands))
	for _, cmd := range commands {
		output, err := d.ExecCommand(ctx, cmd)
		if err != nil {
			return results, err
		}
		results = append(results, output)
	}
	return results, nil
}

// ApplyConfig folds a config batch into the simulated state, honoring
// the (select-group, set-delay) pairing the balancer emits
func (d *Driver) ApplyConfig(ctx context.Context, commands []string) error {
	if !d.IsConnected() {
		return fmt.Errorf("not connected to device")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	currentGroup := ""
	for _, cmd := range commands {
		if m := reSetGroup.FindStringSubmatch(cmd); m != nil {
			currentGroup = m[1]
			if _, ok := d.delays[currentGroup]; !ok {
				d.delays[currentGroup] = 0
			}
			continue
		}
		if m := reSetDelay.FindStringSubmatch(cmd); m != nil {
			if currentGroup == "" {
				return fmt.Errorf("pado delay outside bba-group context")
			}
			delay, err := strconv.Atoi(m[1])
			if err != nil {
				return fmt.Errorf("invalid pado delay in %q", cmd)
			}
			d.delays[currentGroup] = delay
			continue
		}
		return fmt.Errorf("mock driver does not implement config command %q", cmd)
	}

	d.applied = append(d.applied, append([]string(nil), commands...))
	return nil
}

func (d *Driver) renderSummary() string {
	var b strings.Builder
	b.WriteString("                                TOTAL     PTA   FWDED   TRANS\n")

	total := 0
	for _, s := range d.interfaces {
		total += s.Sessions
	}
	fmt.Fprintf(&b, "%-28s %8d %7d %7d %7d\n", "TOTAL", total, total, 0, 0)

	for _, s := range d.interfaces {
		fmt.Fprintf(&b, "%-28s %8d %7d %7d %7d\n", s.Interface, s.Sessions, s.Sessions, 0, 0)
	}
	return b.String()
}

func (d *Driver) renderBbaConfig() string {
	// Stable rendering: groups in first-seen order would require extra
	// bookkeeping; sorted order is fine for parsing purposes
	groups := make([]string, 0, len(d.delays))
	for g := range d.delays {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	var b strings.Builder
	for _, g := range groups {
		fmt.Fprintf(&b, "bba-group pppoe %s\n", g)
		b.WriteString(" virtual-template 1\n")
		if delay := d.delays[g]; delay > 0 {
			fmt.Fprintf(&b, " pado delay %d\n", delay)
		}
	}
	return b.String()
}

// Ensure Driver implements CLIExecutor
var _ types.CLIExecutor = (*Driver)(nil)
