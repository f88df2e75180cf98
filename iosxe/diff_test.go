package iosxe

import (
	"reflect"
	"strings"
	"testing"
)

func TestComputeChangesNoChangeNeeded(t *testing.T) {
	// Delay already converged: empty batch
	desired := []InterfaceDelay{{Interface: "Gi0/1/2", Delay: 0}}
	current := map[string]int{"PPPOE_0/1/2": 0}

	batch, err := ComputeChanges(desired, current)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(batch) != 0 {
		t.Errorf("expected empty batch, got %v", batch)
	}
}

func TestComputeChangesBothGroups(t *testing.T) {
	desired := []InterfaceDelay{{Interface: "Gi0/1/2", Delay: 256}}
	current := map[string]int{
		"PPPOE_0/1/2":     0,
		"PPPOE_NAT_0/1/2": 0,
	}

	batch, err := ComputeChanges(desired, current)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"bba-group pppoe PPPOE_0/1/2",
		"pado delay 256",
		"bba-group pppoe PPPOE_NAT_0/1/2",
		"pado delay 256",
	}
	if !reflect.DeepEqual(batch, want) {
		t.Errorf("batch = %v, want %v", batch, want)
	}
}

func TestComputeChangesAbsentGroupNeverConfigured(t *testing.T) {
	// NAT group missing from the device: only the primary group is touched
	desired := []InterfaceDelay{{Interface: "Gi0/1/2", Delay: 256}}
	current := map[string]int{"PPPOE_0/1/2": 0}

	batch, err := ComputeChanges(desired, current)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"bba-group pppoe PPPOE_0/1/2",
		"pado delay 256",
	}
	if !reflect.DeepEqual(batch, want) {
		t.Errorf("batch = %v, want %v", batch, want)
	}
}

func TestComputeChangesPartialConvergence(t *testing.T) {
	// Primary already at the desired delay, NAT lagging behind
	desired := []InterfaceDelay{{Interface: "Gi0/1/2", Delay: 512}}
	current := map[string]int{
		"PPPOE_0/1/2":     512,
		"PPPOE_NAT_0/1/2": 256,
	}

	batch, err := ComputeChanges(desired, current)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"bba-group pppoe PPPOE_NAT_0/1/2",
		"pado delay 512",
	}
	if !reflect.DeepEqual(batch, want) {
		t.Errorf("batch = %v, want %v", batch, want)
	}
}

func TestComputeChangesPreservesInterfaceOrder(t *testing.T) {
	desired := []InterfaceDelay{
		{Interface: "Gi0/1/3", Delay: 512},
		{Interface: "Gi0/1/2", Delay: 256},
	}
	current := map[string]int{
		"PPPOE_0/1/2":     0,
		"PPPOE_NAT_0/1/2": 0,
		"PPPOE_0/1/3":     0,
		"PPPOE_NAT_0/1/3": 0,
	}

	batch, err := ComputeChanges(desired, current)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"bba-group pppoe PPPOE_0/1/3",
		"pado delay 512",
		"bba-group pppoe PPPOE_NAT_0/1/3",
		"pado delay 512",
		"bba-group pppoe PPPOE_0/1/2",
		"pado delay 256",
		"bba-group pppoe PPPOE_NAT_0/1/2",
		"pado delay 256",
	}
	if !reflect.DeepEqual(batch, want) {
		t.Errorf("batch = %v, want %v", batch, want)
	}
}

func TestComputeChangesDeterministic(t *testing.T) {
	desired := []InterfaceDelay{
		{Interface: "Gi0/1/2", Delay: 256},
		{Interface: "Gi0/1/3", Delay: 0},
	}
	current := map[string]int{
		"PPPOE_0/1/2":     0,
		"PPPOE_NAT_0/1/2": 128,
		"PPPOE_0/1/3":     512,
	}

	first, err := ComputeChanges(desired, current)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ComputeChanges(desired, current)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("batches differ across identical invocations: %v vs %v", first, second)
	}
}

func TestComputeChangesIdempotentAfterConvergence(t *testing.T) {
	desired := []InterfaceDelay{{Interface: "Gi0/1/2", Delay: 256}}
	current := map[string]int{
		"PPPOE_0/1/2":     0,
		"PPPOE_NAT_0/1/2": 0,
	}

	batch, err := ComputeChanges(desired, current)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(batch) == 0 {
		t.Fatal("expected a non-empty first batch")
	}

	// Fold the applied batch back into the current state, as a device
	// honoring the batch would
	converged := ParseCurrentDelays(strings.Join(batch, "\n"))
	for group, delay := range current {
		if _, ok := converged[group]; !ok {
			converged[group] = delay
		}
	}

	second, err := ComputeChanges(desired, converged)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(second) != 0 {
		t.Errorf("expected empty batch after convergence, got %v", second)
	}
}

func TestComputeChangesInvalidInterface(t *testing.T) {
	desired := []InterfaceDelay{{Interface: "Loopback0", Delay: 256}}
	if _, err := ComputeChanges(desired, map[string]int{}); err == nil {
		t.Fatal("expected error for interface without slot/subslot/port suffix")
	}
}
