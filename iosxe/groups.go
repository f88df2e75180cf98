package iosxe

// BBA group naming convention on the BRAS fleet: every physical interface
// has a data group and a NAT group, keyed by the interface number.
// The prefixes are uppercase throughout, matching device configuration.
const (
	groupPrefix    = "PPPOE_"
	natGroupPrefix = "PPPOE_NAT_"
)

// GroupNames derives the two bba-group names associated with a physical
// interface. Pure and deterministic; the only error source is an
// interface name without a slot/subslot/port suffix.
func GroupNames(interfaceName string) (primary, nat string, err error) {
	number, err := InterfaceNumber(interfaceName)
	if err != nil {
		return "", "", err
	}
	return groupPrefix + number, natGroupPrefix + number, nil
}
