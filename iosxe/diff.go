package iosxe

import "fmt"

// InterfaceDelay is the desired PADO delay for one physical interface
type InterfaceDelay struct {
	Interface string
	Delay     int
}

// ComputeChanges diffs the desired per-interface delays against the
// delays currently configured on the device and returns the minimal
// config command batch: a (select-group, set-delay) pair per group whose
// delay differs, primary group before NAT group, in input interface order.
//
// A group absent from current is left alone: the tool never configures a
// group whose existence on the device is unconfirmed. An empty batch
// means no change is needed.
func ComputeChanges(desired []InterfaceDelay, current map[string]int) ([]string, error) {
	var batch []string

	for _, d := range desired {
		primary, nat, err := GroupNames(d.Interface)
		if err != nil {
			return nil, err
		}

		for _, group := range []string{primary, nat} {
			configured, ok := current[group]
			if !ok || configured == d.Delay {
				continue
			}
			batch = append(batch,
				fmt.Sprintf("bba-group pppoe %s", group),
				fmt.Sprintf("pado delay %d", d.Delay),
			)
		}
	}

	return batch, nil
}
