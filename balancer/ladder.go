package balancer

import "fmt"

// Tier is one rung of the threshold ladder: session counts at or above
// Boundary (and below the next rung's boundary) map to Delay.
type Tier struct {
	Boundary int
	Delay    int
}

// ThresholdLadder maps session counts to PADO delays via ordered
// boundaries. Counts below the first boundary map to delay 0; counts at
// or above the last boundary map to the last tier's delay.
type ThresholdLadder struct {
	tiers []Tier
}

// NewLadder validates and builds a ladder. At least one tier is required
// and boundaries must be strictly increasing.
func NewLadder(tiers []Tier) (ThresholdLadder, error) {
	if len(tiers) == 0 {
		return ThresholdLadder{}, fmt.Errorf("threshold ladder requires at least one tier")
	}

	for i, tier := range tiers {
		if tier.Boundary < 0 {
			return ThresholdLadder{}, fmt.Errorf("tier %d: boundary must be non-negative, got %d", i, tier.Boundary)
		}
		if i > 0 && tier.Boundary <= tiers[i-1].Boundary {
			return ThresholdLadder{}, fmt.Errorf("tier %d: boundary %d not greater than previous boundary %d",
				i, tier.Boundary, tiers[i-1].Boundary)
		}
	}

	return ThresholdLadder{tiers: append([]Tier(nil), tiers...)}, nil
}

// Classify maps a session count to its delay tier: the delay of the last
// tier whose boundary is at or below the count, or 0 below the first
// boundary. Monotonically non-decreasing in the count.
func (l ThresholdLadder) Classify(sessions int) int {
	delay := 0
	for _, tier := range l.tiers {
		if sessions < tier.Boundary {
			break
		}
		delay = tier.Delay
	}
	return delay
}

// Tiers returns a copy of the ladder's tiers, for logging
func (l ThresholdLadder) Tiers() []Tier {
	return append([]Tier(nil), l.tiers...)
}
