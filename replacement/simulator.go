package replacement

import "strings"

// Policy names a page replacement policy
type Policy string

const (
	PolicyFIFO    Policy = "fifo"
	PolicyLRU     Policy = "lru"
	PolicyOptimal Policy = "optimal"
)

// Policies lists every supported policy in compare-all order
var Policies = []Policy{PolicyFIFO, PolicyLRU, PolicyOptimal}

// String returns the display name used in reports
func (p Policy) String() string {
	switch p {
	case PolicyFIFO:
		return "FIFO"
	case PolicyLRU:
		return "LRU"
	case PolicyOptimal:
		return "Optimal"
	default:
		return string(p)
	}
}

// ParsePolicy resolves a policy name, ignoring case
func ParsePolicy(name string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(name))); p {
	case PolicyFIFO, PolicyLRU, PolicyOptimal:
		return p, nil
	default:
		return "", errUnknownPolicy("ParsePolicy", name)
	}
}

// Simulator replays a reference string under one replacement policy.
// Implementations keep no state between calls.
type Simulator interface {
	// Policy returns the policy this simulator implements
	Policy() Policy

	// Simulate replays ref against the given number of frames.
	// Returns an ErrCodeInvalidFrameCount error when frames < 1.
	Simulate(ref []PageID, frames int) (*Result, error)
}

// NewSimulator creates a simulator for the given policy. Optimal uses the
// default scan lookahead; use NewOptimalSimulator to pick another.
func NewSimulator(policy Policy) (Simulator, error) {
	switch policy {
	case PolicyFIFO:
		return fifoSimulator{}, nil
	case PolicyLRU:
		return lruSimulator{}, nil
	case PolicyOptimal:
		return &OptimalSimulator{Lookahead: LookaheadScan}, nil
	default:
		return nil, errUnknownPolicy("NewSimulator", string(policy))
	}
}

type fifoSimulator struct{}

func (fifoSimulator) Policy() Policy { return PolicyFIFO }

func (fifoSimulator) Simulate(ref []PageID, frames int) (*Result, error) {
	return SimulateFIFO(ref, frames)
}

type lruSimulator struct{}

func (lruSimulator) Policy() Policy { return PolicyLRU }

func (lruSimulator) Simulate(ref []PageID, frames int) (*Result, error) {
	return SimulateLRU(ref, frames)
}
