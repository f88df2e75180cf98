package snmp

import (
	"context"
	"fmt"
	"time"

	"github.com/gosnmp/gosnmp"
	"github.com/ispstack/pado-balancer/types"
)

// Driver implements the types.Driver interface using SNMP.
// SNMP is used for read-only session telemetry only; PADO delay
// configuration always goes through the CLI driver.
type Driver struct {
	config *types.DeviceConfig
	snmp   *gosnmp.GoSNMP
}

// NewDriver creates a new SNMP driver
func NewDriver(config *types.DeviceConfig) (types.Driver, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}

	if config.Address == "" {
		return nil, fmt.Errorf("address is required")
	}

	// Default SNMP port
	if config.Port == 0 {
		config.Port = 161
	}

	// Default timeout
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	return &Driver{
		config: config,
	}, nil
}

// Connect establishes an SNMP connection
func (d *Driver) Connect(ctx context.Context, config *types.DeviceConfig) error {
	if config != nil {
		d.config = config
	}

	// SNMP version from metadata (default v2c)
	version := gosnmp.Version2c
	if v, ok := d.config.Metadata["snmp_version"]; ok {
		switch v {
		case "1":
			version = gosnmp.Version1
		case "2c":
			version = gosnmp.Version2c
		case "3":
			version = gosnmp.Version3
		}
	}

	community := "public"
	if c, ok := d.config.Metadata["snmp_community"]; ok {
		community = c
	}

	port := d.config.Port
	if port < 0 || port > 65535 {
		port = 161
	}
	snmpClient := &gosnmp.GoSNMP{
		Target:    d.config.Address,
		Port:      uint16(port), //nolint:gosec // validated above
		Community: community,
		Version:   version,
		Timeout:   d.config.Timeout,
		Retries:   3,
	}

	if version == gosnmp.Version3 {
		snmpClient.SecurityModel = gosnmp.UserSecurityModel
		snmpClient.SecurityParameters = &gosnmp.UsmSecurityParameters{
			UserName:                 d.config.Username,
			AuthenticationProtocol:   gosnmp.SHA,
			AuthenticationPassphrase: d.config.Password,
			PrivacyProtocol:          gosnmp.AES,
			PrivacyPassphrase:        d.config.Password,
		}
		snmpClient.MsgFlags = gosnmp.AuthPriv
	}

	if err := snmpClient.Connect(); err != nil {
		return fmt.Errorf("failed to connect SNMP: %w", err)
	}

	d.snmp = snmpClient

	return nil
}

// Disconnect closes the SNMP connection
func (d *Driver) Disconnect(ctx context.Context) error {
	if d.snmp != nil {
		err := d.snmp.Conn.Close()
		d.snmp = nil
		return err
	}
	return nil
}

// IsConnected returns true if connected
func (d *Driver) IsConnected() bool {
	return d.snmp != nil
}

// HealthCheck queries sysUpTime to verify the agent responds
func (d *Driver) HealthCheck(ctx context.Context) error {
	// sysUpTime: standard MIB-II
	_, err := d.GetSNMP(ctx, "1.3.6.1.2.1.1.3.0")
	return err
}

// GetSNMP implements types.SNMPExecutor
func (d *Driver) GetSNMP(ctx context.Context, oid string) (interface{}, error) {
	if !d.IsConnected() {
		return nil, fmt.Errorf("not connected to device")
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := d.snmp.Get([]string{oid})
	if err != nil {
		return nil, fmt.Errorf("SNMP get failed for %s: %w", oid, err)
	}

	if len(result.Variables) == 0 {
		return nil, fmt.Errorf("no value returned for OID %s", oid)
	}

	pdu := result.Variables[0]
	if pdu.Type == gosnmp.NoSuchObject || pdu.Type == gosnmp.NoSuchInstance {
		return nil, fmt.Errorf("OID %s not supported by device", oid)
	}

	return pdu.Value, nil
}

// Ensure Driver implements SNMPExecutor
var _ types.SNMPExecutor = (*Driver)(nil)
