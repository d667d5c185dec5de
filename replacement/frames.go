package replacement

// frameTable is the fixed-size slot array shared by all policies, together
// with the trace being recorded for the current run.
type frameTable struct {
	slots  []Frame
	result *Result
}

func newFrameTable(policy Policy, ref []PageID, frames int) *frameTable {
	occupancy := make([][]Frame, frames)
	for f := range occupancy {
		occupancy[f] = make([]Frame, len(ref))
	}
	return &frameTable{
		slots: make([]Frame, frames),
		result: &Result{
			Policy:    policy,
			Frames:    frames,
			Reference: ref,
			Occupancy: occupancy,
			Faults:    make([]bool, 0, len(ref)),
		},
	}
}

// freeSlot returns the lowest empty slot, or -1 when all are occupied
func (ft *frameTable) freeSlot() int {
	for f, slot := range ft.slots {
		if !slot.Occupied {
			return f
		}
	}
	return -1
}

// slotOf returns the slot holding page, or -1
func (ft *frameTable) slotOf(page PageID) int {
	for f, slot := range ft.slots {
		if slot.Occupied && slot.Page == page {
			return f
		}
	}
	return -1
}

func (ft *frameTable) load(slot int, page PageID) {
	ft.slots[slot] = Frame{Page: page, Occupied: true}
}

func (ft *frameTable) page(slot int) PageID {
	return ft.slots[slot].Page
}

// record closes step t: copies the slots into the occupancy column and
// appends the fault flag.
func (ft *frameTable) record(t int, fault bool) {
	for f, slot := range ft.slots {
		ft.result.Occupancy[f][t] = slot
	}
	ft.result.Faults = append(ft.result.Faults, fault)
	if fault {
		ft.result.TotalFaults++
	}
}

func (ft *frameTable) finish() *Result {
	return ft.result
}
