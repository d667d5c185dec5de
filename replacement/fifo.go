package replacement

import (
	"container/list"
)

// SimulateFIFO replays ref under First-In-First-Out replacement: on a fault
// with every frame occupied, the page that arrived earliest is evicted and
// the new page takes over its frame.
func SimulateFIFO(ref []PageID, frames int) (*Result, error) {
	if frames < 1 {
		return nil, errInvalidFrameCount("SimulateFIFO", frames)
	}

	ft := newFrameTable(PolicyFIFO, ref, frames)
	// arrivals holds resident pages with the oldest at the front; resident
	// maps each of them to its slot.
	arrivals := list.New()
	resident := make(map[PageID]int, frames)

	for t, page := range ref {
		if _, ok := resident[page]; ok {
			ft.record(t, false)
			continue
		}

		slot := ft.freeSlot()
		if slot == -1 {
			oldest := arrivals.Front()
			victim := arrivals.Remove(oldest).(PageID)
			slot = resident[victim]
			delete(resident, victim)
		}

		ft.load(slot, page)
		resident[page] = slot
		arrivals.PushBack(page)
		ft.record(t, true)
	}

	return ft.finish(), nil
}
