package replacement

// PageID identifies a page in a reference string. Pages are only ever
// compared for equality.
type PageID int

// Frame is the content of one frame slot at one step. The zero value is an
// empty slot, so every integer is usable as a page id.
type Frame struct {
	Page     PageID
	Occupied bool
}

// Result is the full trace of one simulation run.
//
// Occupancy[f][t] holds the content of frame f right after reference t was
// processed, and Faults[t] reports whether reference t faulted. A Result is
// never modified after the simulator returns it; callers must treat the
// slices as read-only.
type Result struct {
	Policy      Policy
	Frames      int
	Reference   []PageID
	Occupancy   [][]Frame
	Faults      []bool
	TotalFaults int
}

// Requests returns the number of references replayed
func (r *Result) Requests() int {
	return len(r.Reference)
}

// Hits returns the number of references that did not fault
func (r *Result) Hits() int {
	return len(r.Reference) - r.TotalFaults
}

// HitRatio returns the percentage of references that hit. The second return
// value is false for an empty reference string, where the ratio is undefined.
func (r *Result) HitRatio() (float64, bool) {
	return hitRatio(len(r.Reference), r.TotalFaults)
}

// At returns the page held by frame f after step t
func (r *Result) At(f, t int) (PageID, bool) {
	slot := r.Occupancy[f][t]
	return slot.Page, slot.Occupied
}

// Resident returns the pages held after step t, in frame order
func (r *Result) Resident(t int) []PageID {
	pages := make([]PageID, 0, r.Frames)
	for f := 0; f < r.Frames; f++ {
		if slot := r.Occupancy[f][t]; slot.Occupied {
			pages = append(pages, slot.Page)
		}
	}
	return pages
}

// Summary is the aggregate view of a run used by compare mode.
// HitRatio is a percentage and is only meaningful when HitRatioDefined is
// set, which it is not for an empty reference string.
type Summary struct {
	Policy          Policy
	Requests        int
	Faults          int
	Hits            int
	HitRatio        float64
	HitRatioDefined bool
}

// Summarize reduces a result to its aggregate statistics
func Summarize(r *Result) Summary {
	ratio, ok := r.HitRatio()
	return Summary{
		Policy:          r.Policy,
		Requests:        r.Requests(),
		Faults:          r.TotalFaults,
		Hits:            r.Hits(),
		HitRatio:        ratio,
		HitRatioDefined: ok,
	}
}

func hitRatio(requests, faults int) (float64, bool) {
	if requests == 0 {
		return 0, false
	}
	return 100.0 * float64(requests-faults) / float64(requests), true
}
