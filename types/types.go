package types

import (
	"context"
	"fmt"
	"time"
)

// Protocol represents the transport used to talk to a BRAS
type Protocol string

const (
	ProtocolCLI  Protocol = "cli"
	ProtocolSNMP Protocol = "snmp"
	ProtocolMock Protocol = "mock" // For testing/simulation
)

// DeviceConfig contains connection parameters for a single BRAS
type DeviceConfig struct {
	// Name is the human-readable device label used in logs and metrics
	Name string

	// Address is the management IP/hostname
	Address string

	// Port is the management port (if not default)
	Port int

	// Protocol is the transport protocol
	Protocol Protocol

	// Username for authentication
	Username string

	// Password for authentication
	Password string

	// Timeout for transport operations
	Timeout time.Duration

	// Metadata contains transport-specific options (snmp_community, snmp_version, ...)
	Metadata map[string]string
}

// Driver is the interface all transport drivers must implement
type Driver interface {
	// Connect establishes a connection to the device
	Connect(ctx context.Context, config *DeviceConfig) error

	// Disconnect closes the connection
	Disconnect(ctx context.Context) error

	// IsConnected returns true if connected
	IsConnected() bool

	// HealthCheck verifies the connection is still usable
	HealthCheck(ctx context.Context) error
}

// CLIExecutor is implemented by drivers that support CLI execution.
// The vendor adapter uses it to run show commands and push configuration.
type CLIExecutor interface {
	// ExecCommand executes a CLI command in exec mode and returns the output
	ExecCommand(ctx context.Context, command string) (string, error)

	// ExecCommands executes multiple CLI commands sequentially
	ExecCommands(ctx context.Context, commands []string) ([]string, error)

	// ApplyConfig enters configuration mode, sends the commands in order
	// and leaves configuration mode. All-or-nothing from the caller's
	// perspective: any command error aborts the batch.
	ApplyConfig(ctx context.Context, commands []string) error
}

// SNMPExecutor is implemented by drivers that support SNMP queries.
// Used for read-only session telemetry, never for configuration.
type SNMPExecutor interface {
	// GetSNMP retrieves a single SNMP value by OID
	GetSNMP(ctx context.Context, oid string) (interface{}, error)
}

// InterfaceSample is one (interface, session count) row scraped from a
// PPPoE summary. Produced fresh per polling cycle, never persisted.
type InterfaceSample struct {
	// Interface is the vendor-formatted physical interface name,
	// e.g. "GigabitEthernet0/1/2"
	Interface string

	// Sessions is the number of active PPPoE sessions on the interface
	Sessions int
}

// ParseError indicates device output failed to match an expected structural
// pattern where a match was required. It is propagated, not recovered:
// it means either a device output format mismatch or a programming defect.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s (input: %q)", e.Reason, e.Input)
}

// NewParseError creates a ParseError for the given input
func NewParseError(input, reason string) *ParseError {
	return &ParseError{Input: input, Reason: reason}
}
