package padobalancer

import (
	"fmt"

	"github.com/ispstack/pado-balancer/drivers/cli"
	"github.com/ispstack/pado-balancer/drivers/mock"
	"github.com/ispstack/pado-balancer/drivers/snmp"
	"github.com/ispstack/pado-balancer/types"
)

// NewDriver creates a transport driver for the requested protocol.
// CLI is the default: it is the only transport that can configure PADO
// delays; SNMP serves read-only telemetry.
func NewDriver(protocol types.Protocol, config *types.DeviceConfig) (types.Driver, error) {
	switch protocol {
	case types.ProtocolCLI, "":
		return cli.NewDriver(config)
	case types.ProtocolSNMP:
		return snmp.NewDriver(config)
	case types.ProtocolMock:
		return mock.NewDriver(config)
	default:
		return nil, fmt.Errorf("unsupported protocol: %s", protocol)
	}
}
