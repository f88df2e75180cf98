package iosxe

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/ispstack/pado-balancer/types"
)

// fakeCLIDriver satisfies types.Driver and types.CLIExecutor with canned
// show output, recording every applied config batch.
type fakeCLIDriver struct {
	connected bool
	outputs   map[string]string
	applied   [][]string
	execErr   error
}

func (f *fakeCLIDriver) Connect(ctx context.Context, config *types.DeviceConfig) error {
	f.connected = true
	return nil
}

func (f *fakeCLIDriver) Disconnect(ctx context.Context) error {
	f.connected = false
	return nil
}

func (f *fakeCLIDriver) IsConnected() bool { return f.connected }

func (f *fakeCLIDriver) HealthCheck(ctx context.Context) error { return nil }

func (f *fakeCLIDriver) ExecCommand(ctx context.Context, command string) (string, error) {
	if f.execErr != nil {
		return "", f.execErr
	}
	output, ok := f.outputs[command]
	if !ok {
		return "", fmt.Errorf("unexpected command %q", command)
	}
	return output, nil
}

func (f *fakeCLIDriver) ExecCommands(ctx context.Context, commands []string) ([]string, error) {
	results := make([]string, 0, len(commands))
	for _, cmd := range commands {
		output, err := f.ExecCommand(ctx, cmd)
		if err != nil {
			return results, err
		}
		results = append(results, output)
	}
	return results, nil
}

func (f *fakeCLIDriver) ApplyConfig(ctx context.Context, commands []string) error {
	if f.execErr != nil {
		return f.execErr
	}
	f.applied = append(f.applied, commands)
	return nil
}

func TestAdapterSessions(t *testing.T) {
	driver := &fakeCLIDriver{
		connected: true,
		outputs: map[string]string{
			cmdShowPPPoESummary: "GigabitEthernet0/1/2             1410    1410       0       0\n",
		},
	}
	adapter := NewAdapter(driver, &types.DeviceConfig{Name: "bras-east-1"})

	samples, err := adapter.Sessions(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(samples) != 1 || samples[0].Interface != "GigabitEthernet0/1/2" || samples[0].Sessions != 1410 {
		t.Errorf("unexpected samples: %+v", samples)
	}
}

func TestAdapterCurrentDelays(t *testing.T) {
	driver := &fakeCLIDriver{
		connected: true,
		outputs: map[string]string{
			cmdShowBbaConfig: "bba-group pppoe PPPOE_0/1/2\n pado delay 256\n",
		},
	}
	adapter := NewAdapter(driver, &types.DeviceConfig{Name: "bras-east-1"})

	delays, err := adapter.CurrentDelays(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if delays["PPPOE_0/1/2"] != 256 {
		t.Errorf("delays = %v, want PPPOE_0/1/2 at 256", delays)
	}
}

func TestAdapterApply(t *testing.T) {
	driver := &fakeCLIDriver{connected: true, outputs: map[string]string{}}
	adapter := NewAdapter(driver, &types.DeviceConfig{Name: "bras-east-1"})

	batch := []string{"bba-group pppoe PPPOE_0/1/2", "pado delay 256"}
	if err := adapter.Apply(context.Background(), batch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(driver.applied) != 1 || !reflect.DeepEqual(driver.applied[0], batch) {
		t.Errorf("applied = %v, want [%v]", driver.applied, batch)
	}

	// Empty batch must not touch the device
	if err := adapter.Apply(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(driver.applied) != 1 {
		t.Errorf("empty batch reached the device: %v", driver.applied)
	}
}

func TestAdapterFetchErrorPropagates(t *testing.T) {
	driver := &fakeCLIDriver{connected: true, execErr: fmt.Errorf("connection reset")}
	adapter := NewAdapter(driver, &types.DeviceConfig{Name: "bras-east-1"})

	if _, err := adapter.Sessions(context.Background()); err == nil {
		t.Error("expected error from Sessions")
	}
	if _, err := adapter.CurrentDelays(context.Background()); err == nil {
		t.Error("expected error from CurrentDelays")
	}
}

func TestAdapterTotalSessionsWithoutSNMP(t *testing.T) {
	driver := &fakeCLIDriver{connected: true}
	adapter := NewAdapter(driver, &types.DeviceConfig{Name: "bras-east-1"})

	if _, err := adapter.TotalSessions(context.Background()); err == nil {
		t.Error("expected error when no SNMP executor is attached")
	}
}

type fakeSNMPExecutor struct {
	values map[string]interface{}
}

func (f *fakeSNMPExecutor) GetSNMP(ctx context.Context, oid string) (interface{}, error) {
	value, ok := f.values[oid]
	if !ok {
		return nil, fmt.Errorf("no such OID %s", oid)
	}
	return value, nil
}

func TestAdapterTotalSessions(t *testing.T) {
	driver := &fakeCLIDriver{connected: true}
	adapter := NewAdapter(driver, &types.DeviceConfig{Name: "bras-east-1"})
	adapter.AttachSNMP(&fakeSNMPExecutor{values: map[string]interface{}{
		OIDPPPoECurrSessions: uint32(4223),
	}})

	total, err := adapter.TotalSessions(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 4223 {
		t.Errorf("total = %d, want 4223", total)
	}
}
