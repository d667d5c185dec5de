package replacement

// LookaheadStrategy selects how Optimal finds a page's next use
type LookaheadStrategy string

const (
	// LookaheadScan walks the remaining suffix of the reference string for
	// every resident page on every eviction. O(F*N) per fault.
	LookaheadScan LookaheadStrategy = "scan"

	// LookaheadIndexed precomputes, for every position, the position of the
	// next reference to the same page. O(N) up front, O(F) per fault.
	LookaheadIndexed LookaheadStrategy = "indexed"
)

// ParseLookahead resolves a lookahead strategy name. An empty name selects
// LookaheadScan.
func ParseLookahead(name string) (LookaheadStrategy, error) {
	switch s := LookaheadStrategy(name); s {
	case "":
		return LookaheadScan, nil
	case LookaheadScan, LookaheadIndexed:
		return s, nil
	default:
		return "", errUnknownLookahead("ParseLookahead", s)
	}
}

// OptimalSimulator implements Belady's algorithm: on a fault with every
// frame occupied, evict the page that is not used again, or else the page
// whose next use lies farthest in the future.
type OptimalSimulator struct {
	Lookahead LookaheadStrategy
}

// NewOptimalSimulator creates an Optimal simulator with the given lookahead
func NewOptimalSimulator(strategy LookaheadStrategy) (*OptimalSimulator, error) {
	switch strategy {
	case LookaheadScan, LookaheadIndexed:
		return &OptimalSimulator{Lookahead: strategy}, nil
	default:
		return nil, errUnknownLookahead("NewOptimalSimulator", strategy)
	}
}

func (s *OptimalSimulator) Policy() Policy { return PolicyOptimal }

func (s *OptimalSimulator) Simulate(ref []PageID, frames int) (*Result, error) {
	switch s.Lookahead {
	case LookaheadScan, "":
		return SimulateOptimal(ref, frames)
	case LookaheadIndexed:
		return SimulateOptimalIndexed(ref, frames)
	default:
		return nil, errUnknownLookahead("OptimalSimulator.Simulate", s.Lookahead)
	}
}

// SimulateOptimal replays ref under Optimal replacement using a suffix scan
// for every lookahead.
func SimulateOptimal(ref []PageID, frames int) (*Result, error) {
	if frames < 1 {
		return nil, errInvalidFrameCount("SimulateOptimal", frames)
	}

	ft := newFrameTable(PolicyOptimal, ref, frames)

	for t, page := range ref {
		if ft.slotOf(page) != -1 {
			ft.record(t, false)
			continue
		}

		slot := ft.freeSlot()
		if slot == -1 {
			slot = farthestNextUse(ft, ref, t)
		}

		ft.load(slot, page)
		ft.record(t, true)
	}

	return ft.finish(), nil
}

// farthestNextUse picks the victim slot at step t. The first page with no
// later reference is taken at once; otherwise the farthest next use wins,
// lowest slot on ties.
func farthestNextUse(ft *frameTable, ref []PageID, t int) int {
	victim, farthest := -1, -1
	for f := range ft.slots {
		page := ft.page(f)
		next := t + 1
		for next < len(ref) && ref[next] != page {
			next++
		}
		if next == len(ref) {
			return f
		}
		if next > farthest {
			farthest = next
			victim = f
		}
	}
	return victim
}

// SimulateOptimalIndexed produces the same trace as SimulateOptimal but
// answers lookaheads from a precomputed next-occurrence table.
func SimulateOptimalIndexed(ref []PageID, frames int) (*Result, error) {
	if frames < 1 {
		return nil, errInvalidFrameCount("SimulateOptimalIndexed", frames)
	}

	next := nextOccurrence(ref)
	ft := newFrameTable(PolicyOptimal, ref, frames)
	// nextUse[f] is the next reference to the page in slot f. It only has to
	// be refreshed when that page is referenced, since no reference in
	// between can touch it.
	nextUse := make([]int, frames)

	for t, page := range ref {
		if slot := ft.slotOf(page); slot != -1 {
			nextUse[slot] = next[t]
			ft.record(t, false)
			continue
		}

		slot := ft.freeSlot()
		if slot == -1 {
			slot = 0
			for f := 1; f < frames; f++ {
				if nextUse[f] > nextUse[slot] {
					slot = f
				}
			}
		}

		ft.load(slot, page)
		nextUse[slot] = next[t]
		ft.record(t, true)
	}

	return ft.finish(), nil
}

// nextOccurrence returns next[t] = smallest u > t with ref[u] == ref[t], or
// len(ref) when the page is never referenced again.
func nextOccurrence(ref []PageID) []int {
	next := make([]int, len(ref))
	seen := make(map[PageID]int)
	for t := len(ref) - 1; t >= 0; t-- {
		if u, ok := seen[ref[t]]; ok {
			next[t] = u
		} else {
			next[t] = len(ref)
		}
		seen[ref[t]] = t
	}
	return next
}
