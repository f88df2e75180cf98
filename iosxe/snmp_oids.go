package iosxe

// CISCO-PPPOE-MIB (enterprise 9.9.194). Used for read-only cross-checks
// of the session totals scraped from the CLI.
const (
	// OIDPPPoECurrSessions is cPppoeSystemCurrSessions: the number of
	// active PPPoE sessions terminated on the device.
	OIDPPPoECurrSessions = "1.3.6.1.4.1.9.9.194.1.1.2.0"
)
