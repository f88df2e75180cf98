// Package metrics exposes the balancer's Prometheus collectors.
package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "pppoe_balancer"

var (
	// InterfaceSessions is the session count scraped per interface
	InterfaceSessions = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "interface_sessions",
		Help:      "PPPoE sessions per physical interface.",
	}, []string{"device", "interface"})

	// InterfaceDelay is the PADO delay classified per interface
	InterfaceDelay = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "interface_pado_delay",
		Help:      "Desired PADO delay per physical interface.",
	}, []string{"device", "interface"})

	// DeviceSessions is the device-wide session total read over SNMP
	DeviceSessions = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "device_sessions",
		Help:      "Device-wide PPPoE session total (SNMP cross-check).",
	}, []string{"device"})

	// PassSuccess is 1 when the last pass over a device completed
	PassSuccess = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "pass_success",
		Help:      "Whether the last polling pass over the device succeeded.",
	}, []string{"device"})

	// PassDuration is the wall time of the last pass over a device
	PassDuration = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "pass_duration_seconds",
		Help:      "Duration of the last polling pass over the device.",
	}, []string{"device"})

	// CommandsApplied counts config commands pushed per device
	CommandsApplied = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "commands_applied_total",
		Help:      "Configuration commands applied per device.",
	}, []string{"device"})
)

func init() {
	prometheus.MustRegister(
		InterfaceSessions,
		InterfaceDelay,
		DeviceSessions,
		PassSuccess,
		PassDuration,
		CommandsApplied,
	)
}
