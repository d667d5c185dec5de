package replacement

// SimulateLRU replays ref under Least-Recently-Used replacement. The
// reference index is the logical clock, so every resident page carries a
// distinct last-use stamp; the lowest slot still wins on equal stamps.
func SimulateLRU(ref []PageID, frames int) (*Result, error) {
	if frames < 1 {
		return nil, errInvalidFrameCount("SimulateLRU", frames)
	}

	ft := newFrameTable(PolicyLRU, ref, frames)
	lastUse := make(map[PageID]int, frames)

	for t, page := range ref {
		if _, ok := lastUse[page]; ok {
			lastUse[page] = t
			ft.record(t, false)
			continue
		}

		slot := ft.freeSlot()
		if slot == -1 {
			slot = leastRecentlyUsed(ft, lastUse)
			delete(lastUse, ft.page(slot))
		}

		ft.load(slot, page)
		lastUse[page] = t
		ft.record(t, true)
	}

	return ft.finish(), nil
}

// leastRecentlyUsed scans a full frame table and returns the slot whose page
// has the oldest stamp
func leastRecentlyUsed(ft *frameTable, lastUse map[PageID]int) int {
	victim := -1
	oldest := 0
	for f := range ft.slots {
		stamp := lastUse[ft.page(f)]
		if victim == -1 || stamp < oldest {
			victim = f
			oldest = stamp
		}
	}
	return victim
}
