package iosxe

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ispstack/pado-balancer/types"
)

var (
	// reInterfaceSessions matches one row of "show pppoe summary": a
	// physical interface name ending in a slot/subslot/port triple,
	// followed by a session count. Aggregate rows ("TOTAL ...") and
	// malformed lines simply do not match.
	reInterfaceSessions = regexp.MustCompile(`(\S+\d/\d/\d)\s+(\d+)`)

	// reInterfaceNumber extracts the trailing slot/subslot/port triple
	// from a physical interface name.
	reInterfaceNumber = regexp.MustCompile(`(\d/\d/\d)$`)

	// reBbaGroup matches a bba-group declaration in running config
	reBbaGroup = regexp.MustCompile(`^bba-group pppoe (\S+)`)

	// rePadoDelay matches a pado delay line inside a bba-group block.
	// Indentation is optional so the committed form of a command batch
	// parses the same way as running-config output.
	rePadoDelay = regexp.MustCompile(`^\s*pado delay (\d+)`)
)

// ParseSessions extracts (interface, session count) pairs from the raw
// output of "show pppoe summary", in document order. Lines that do not
// match the physical-interface pattern are ignored.
func ParseSessions(raw string) []types.InterfaceSample {
	matches := reInterfaceSessions.FindAllStringSubmatch(raw, -1)

	samples := make([]types.InterfaceSample, 0, len(matches))
	for _, m := range matches {
		count, err := strconv.Atoi(m[2])
		if err != nil {
			// Cannot happen given the pattern; skip rather than abort
			continue
		}
		samples = append(samples, types.InterfaceSample{
			Interface: m[1],
			Sessions:  count,
		})
	}

	return samples
}

// delayAccumulator carries the fold state while walking a bba-group
// config section: the group most recently declared and the delays
// collected so far.
type delayAccumulator struct {
	currentGroup string
	delays       map[string]int
}

// ParseCurrentDelays extracts the currently configured PADO delay per
// bba-group from the raw output of
// "show running-config | section bba-group".
//
// A group declaration seeds the group at delay 0; a subsequent indented
// "pado delay" line overrides it. A delay line seen before any group
// declaration is ignored: well-formed IOS-XE output cannot produce one,
// and silently dropping it is safer than inventing a group to attach it to.
func ParseCurrentDelays(raw string) map[string]int {
	acc := delayAccumulator{delays: make(map[string]int)}

	for _, line := range strings.Split(raw, "\n") {
		if m := reBbaGroup.FindStringSubmatch(line); m != nil {
			acc.currentGroup = m[1]
			acc.delays[acc.currentGroup] = 0
			continue
		}
		if m := rePadoDelay.FindStringSubmatch(line); m != nil {
			if acc.currentGroup == "" {
				continue
			}
			delay, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			acc.delays[acc.currentGroup] = delay
		}
	}

	return acc.delays
}

// InterfaceNumber extracts the trailing slot/subslot/port triple from a
// physical interface name, e.g. "GigabitEthernet0/1/2" -> "0/1/2".
// All interfaces in scope are physical and carry this suffix; a name
// without it is a contract violation and yields a ParseError.
func InterfaceNumber(name string) (string, error) {
	m := reInterfaceNumber.FindStringSubmatch(name)
	if m == nil {
		return "", types.NewParseError(name, "interface name has no slot/subslot/port suffix")
	}
	return m[1], nil
}
