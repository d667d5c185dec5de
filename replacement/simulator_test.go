package replacement

import (
	"errors"
	"math/rand"
	"testing"
)

var beladyString = []PageID{1, 2, 3, 4, 1, 2, 5, 1, 2, 3, 4, 5}

// Textbook string used for LRU walkthroughs, and its 13-reference prefix.
var textbookString = []PageID{7, 0, 1, 2, 0, 3, 0, 4, 2, 3, 0, 3, 2, 1, 2, 0, 1, 7, 0, 1}

type simulateFunc func([]PageID, int) (*Result, error)

var allSimulations = []struct {
	name     string
	policy   Policy
	simulate simulateFunc
}{
	{"FIFO", PolicyFIFO, SimulateFIFO},
	{"LRU", PolicyLRU, SimulateLRU},
	{"Optimal", PolicyOptimal, SimulateOptimal},
	{"OptimalIndexed", PolicyOptimal, SimulateOptimalIndexed},
}

func mustSimulate(t *testing.T, simulate simulateFunc, ref []PageID, frames int) *Result {
	t.Helper()
	r, err := simulate(ref, frames)
	if err != nil {
		t.Fatalf("Simulation failed: %v", err)
	}
	return r
}

func TestTextbookFaultCounts(t *testing.T) {
	tests := []struct {
		name     string
		simulate simulateFunc
		ref      []PageID
		frames   int
		faults   int
	}{
		{"FIFO belady", SimulateFIFO, beladyString, 3, 9},
		{"LRU belady", SimulateLRU, beladyString, 3, 10},
		{"Optimal belady", SimulateOptimal, beladyString, 3, 7},
		{"OptimalIndexed belady", SimulateOptimalIndexed, beladyString, 3, 7},
		{"FIFO belady anomaly", SimulateFIFO, beladyString, 4, 10},
		{"LRU textbook", SimulateLRU, textbookString, 3, 12},
		{"LRU textbook prefix", SimulateLRU, textbookString[:13], 3, 9},
		{"FIFO textbook", SimulateFIFO, textbookString, 3, 15},
		{"Optimal textbook", SimulateOptimal, textbookString, 3, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustSimulate(t, tt.simulate, tt.ref, tt.frames)
			if r.TotalFaults != tt.faults {
				t.Errorf("Expected %d faults, got %d", tt.faults, r.TotalFaults)
			}
		})
	}
}

func TestOccupancyTraces(t *testing.T) {
	tests := []struct {
		name     string
		simulate simulateFunc
		final    []PageID
		step9    []PageID
	}{
		{"FIFO", SimulateFIFO, []PageID{5, 3, 4}, []PageID{5, 3, 2}},
		{"LRU", SimulateLRU, []PageID{3, 4, 5}, []PageID{3, 1, 2}},
		{"Optimal", SimulateOptimal, []PageID{4, 2, 5}, []PageID{3, 2, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustSimulate(t, tt.simulate, beladyString, 3)
			assertResident(t, r, 9, tt.step9)
			assertResident(t, r, len(beladyString)-1, tt.final)
		})
	}
}

func assertResident(t *testing.T, r *Result, step int, want []PageID) {
	t.Helper()
	for f, page := range want {
		got, ok := r.At(f, step)
		if !ok {
			t.Errorf("Step %d: expected frame %d to hold %d, got empty", step, f, page)
			continue
		}
		if got != page {
			t.Errorf("Step %d: expected frame %d to hold %d, got %d", step, f, page, got)
		}
	}
}

func TestEmptyFramesUntilFilled(t *testing.T) {
	for _, sim := range allSimulations {
		t.Run(sim.name, func(t *testing.T) {
			r := mustSimulate(t, sim.simulate, []PageID{4, 4, 9}, 3)

			if _, ok := r.At(1, 1); ok {
				t.Error("Frame 1 should still be empty after a repeated page")
			}
			if page, ok := r.At(1, 2); !ok || page != 9 {
				t.Errorf("Expected page 9 in frame 1 at step 2, got %d (occupied=%v)", page, ok)
			}
			if _, ok := r.At(2, 2); ok {
				t.Error("Frame 2 should never be filled")
			}
			if r.TotalFaults != 2 {
				t.Errorf("Expected 2 faults, got %d", r.TotalFaults)
			}
		})
	}
}

func TestNegativeAndZeroPageIDs(t *testing.T) {
	ref := []PageID{0, -1, 0, -1, -2}
	for _, sim := range allSimulations {
		t.Run(sim.name, func(t *testing.T) {
			r := mustSimulate(t, sim.simulate, ref, 2)
			if r.TotalFaults != 3 {
				t.Errorf("Expected 3 faults, got %d", r.TotalFaults)
			}
			if page, ok := r.At(0, 0); !ok || page != 0 {
				t.Errorf("Page 0 must be distinguishable from an empty frame")
			}
		})
	}
}

func TestInvalidFrameCount(t *testing.T) {
	for _, sim := range allSimulations {
		for _, frames := range []int{0, -3} {
			r, err := sim.simulate(beladyString, frames)
			if err == nil {
				t.Fatalf("%s: expected error for %d frames", sim.name, frames)
			}
			if r != nil {
				t.Errorf("%s: expected nil result on error", sim.name)
			}
			if !errors.Is(err, ErrInvalidFrameCount) {
				t.Errorf("%s: expected ErrInvalidFrameCount, got %v", sim.name, err)
			}
			if GetErrorCode(err) != ErrCodeInvalidFrameCount {
				t.Errorf("%s: expected code %d, got %d", sim.name, ErrCodeInvalidFrameCount, GetErrorCode(err))
			}
		}
	}
}

func TestEmptyReferenceString(t *testing.T) {
	for _, sim := range allSimulations {
		t.Run(sim.name, func(t *testing.T) {
			r := mustSimulate(t, sim.simulate, nil, 3)

			if r.Requests() != 0 || r.TotalFaults != 0 {
				t.Errorf("Expected 0 requests and 0 faults, got %d and %d", r.Requests(), r.TotalFaults)
			}
			if len(r.Occupancy) != 3 {
				t.Errorf("Expected 3 occupancy rows, got %d", len(r.Occupancy))
			}
			if _, ok := r.HitRatio(); ok {
				t.Error("Hit ratio must be undefined for an empty reference string")
			}
		})
	}
}

func TestSingleFrame(t *testing.T) {
	ref := []PageID{1, 1, 2, 1, 1}
	for _, sim := range allSimulations {
		t.Run(sim.name, func(t *testing.T) {
			r := mustSimulate(t, sim.simulate, ref, 1)
			want := []bool{true, false, true, true, false}
			for i, fault := range want {
				if r.Faults[i] != fault {
					t.Errorf("Step %d: expected fault=%v, got %v", i, fault, r.Faults[i])
				}
			}
		})
	}
}

func TestLRUTieBreakLowestSlot(t *testing.T) {
	// Touching 1 leaves page 2 in slot 1 with the oldest stamp.
	r := mustSimulate(t, SimulateLRU, []PageID{1, 2, 3, 1, 4}, 3)
	assertResident(t, r, 4, []PageID{1, 4, 3})
}

func TestOptimalEvictsFirstPageWithoutFutureUse(t *testing.T) {
	// Neither 1 nor 2 is referenced again; slot 0 is the first such slot.
	r := mustSimulate(t, SimulateOptimal, []PageID{1, 2, 3, 4, 3}, 3)
	assertResident(t, r, 3, []PageID{4, 2, 3})

	indexed := mustSimulate(t, SimulateOptimalIndexed, []PageID{1, 2, 3, 4, 3}, 3)
	assertResident(t, indexed, 3, []PageID{4, 2, 3})
}

func randomReference(rng *rand.Rand, length, pages int) []PageID {
	ref := make([]PageID, length)
	for i := range ref {
		ref[i] = PageID(rng.Intn(pages))
	}
	return ref
}

func TestOptimalNeverWorse(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 300; i++ {
		ref := randomReference(rng, 1+rng.Intn(60), 1+rng.Intn(10))
		frames := 1 + rng.Intn(6)

		fifo := mustSimulate(t, SimulateFIFO, ref, frames)
		lru := mustSimulate(t, SimulateLRU, ref, frames)
		opt := mustSimulate(t, SimulateOptimal, ref, frames)

		if opt.TotalFaults > fifo.TotalFaults {
			t.Fatalf("Optimal (%d) worse than FIFO (%d) for %v with %d frames", opt.TotalFaults, fifo.TotalFaults, ref, frames)
		}
		if opt.TotalFaults > lru.TotalFaults {
			t.Fatalf("Optimal (%d) worse than LRU (%d) for %v with %d frames", opt.TotalFaults, lru.TotalFaults, ref, frames)
		}
	}
}

func TestCompulsoryFaults(t *testing.T) {
	// The first F references are distinct and the rest only revisit them.
	ref := []PageID{5, 6, 7, 7, 5, 6, 5, 7, 8}
	for _, sim := range allSimulations {
		t.Run(sim.name, func(t *testing.T) {
			r := mustSimulate(t, sim.simulate, ref, 3)
			for i := 0; i < 8; i++ {
				if want := i < 3; r.Faults[i] != want {
					t.Errorf("Step %d: expected fault=%v, got %v", i, want, r.Faults[i])
				}
			}
			if !r.Faults[8] {
				t.Error("First reference to a new page must fault")
			}
		})
	}
}

func TestTraceInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		ref := randomReference(rng, rng.Intn(50), 1+rng.Intn(8))
		frames := 1 + rng.Intn(5)

		for _, sim := range allSimulations {
			r := mustSimulate(t, sim.simulate, ref, frames)
			checkInvariants(t, sim.name, r)
		}
	}
}

func checkInvariants(t *testing.T, name string, r *Result) {
	t.Helper()

	faults := 0
	for step, page := range r.Reference {
		resident := r.Resident(step)
		if len(resident) > r.Frames {
			t.Fatalf("%s step %d: %d pages resident in %d frames", name, step, len(resident), r.Frames)
		}
		seen := make(map[PageID]bool, len(resident))
		for _, p := range resident {
			if seen[p] {
				t.Fatalf("%s step %d: page %d resident twice", name, step, p)
			}
			seen[p] = true
		}
		if !seen[page] {
			t.Fatalf("%s step %d: referenced page %d not resident", name, step, page)
		}

		wasResident := false
		if step > 0 {
			for _, p := range r.Resident(step - 1) {
				if p == page {
					wasResident = true
				}
			}
		}
		if r.Faults[step] == wasResident {
			t.Fatalf("%s step %d: fault=%v but page resident before=%v", name, step, r.Faults[step], wasResident)
		}
		if r.Faults[step] {
			faults++
		}
	}

	if faults != r.TotalFaults {
		t.Fatalf("%s: TotalFaults %d does not match %d fault markers", name, r.TotalFaults, faults)
	}
}

func TestOptimalDeterministicAndStrategiesAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for i := 0; i < 200; i++ {
		ref := randomReference(rng, rng.Intn(80), 1+rng.Intn(12))
		frames := 1 + rng.Intn(6)

		first := mustSimulate(t, SimulateOptimal, ref, frames)
		second := mustSimulate(t, SimulateOptimal, ref, frames)
		indexed := mustSimulate(t, SimulateOptimalIndexed, ref, frames)

		for f := 0; f < frames; f++ {
			for step := range ref {
				a, b, c := first.Occupancy[f][step], second.Occupancy[f][step], indexed.Occupancy[f][step]
				if a != b {
					t.Fatalf("Re-run differs at frame %d step %d: %+v vs %+v", f, step, a, b)
				}
				if a != c {
					t.Fatalf("Indexed lookahead differs at frame %d step %d for %v: %+v vs %+v", f, step, ref, a, c)
				}
			}
		}
	}
}

func TestSimulationDoesNotMutateReference(t *testing.T) {
	ref := append([]PageID(nil), beladyString...)
	for _, sim := range allSimulations {
		mustSimulate(t, sim.simulate, ref, 3)
	}
	for i := range ref {
		if ref[i] != beladyString[i] {
			t.Fatalf("Reference string modified at %d", i)
		}
	}
}

func TestNewSimulator(t *testing.T) {
	for _, policy := range Policies {
		sim, err := NewSimulator(policy)
		if err != nil {
			t.Fatalf("NewSimulator(%s) failed: %v", policy, err)
		}
		if sim.Policy() != policy {
			t.Errorf("Expected policy %s, got %s", policy, sim.Policy())
		}
		r, err := sim.Simulate(beladyString, 3)
		if err != nil {
			t.Fatalf("Simulate failed: %v", err)
		}
		if r.Policy != policy {
			t.Errorf("Expected result policy %s, got %s", policy, r.Policy)
		}
	}

	if _, err := NewSimulator("clock"); !IsErrorCode(err, ErrCodeUnknownPolicy) {
		t.Errorf("Expected unknown policy error, got %v", err)
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		input   string
		want    Policy
		wantErr bool
	}{
		{"fifo", PolicyFIFO, false},
		{" LRU ", PolicyLRU, false},
		{"Optimal", PolicyOptimal, false},
		{"opt", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParsePolicy(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePolicy(%q): expected error=%v, got %v", tt.input, tt.wantErr, err)
		}
		if got != tt.want {
			t.Errorf("ParsePolicy(%q): expected %q, got %q", tt.input, tt.want, got)
		}
	}
}

func TestOptimalSimulatorLookahead(t *testing.T) {
	for _, strategy := range []LookaheadStrategy{LookaheadScan, LookaheadIndexed} {
		sim, err := NewOptimalSimulator(strategy)
		if err != nil {
			t.Fatalf("NewOptimalSimulator(%s) failed: %v", strategy, err)
		}
		r, err := sim.Simulate(beladyString, 3)
		if err != nil {
			t.Fatalf("Simulate failed: %v", err)
		}
		if r.TotalFaults != 7 {
			t.Errorf("%s: expected 7 faults, got %d", strategy, r.TotalFaults)
		}
	}

	if _, err := NewOptimalSimulator("table"); !errors.Is(err, ErrUnknownLookahead) {
		t.Errorf("Expected ErrUnknownLookahead, got %v", err)
	}

	got, err := ParseLookahead("")
	if err != nil || got != LookaheadScan {
		t.Errorf("Expected empty lookahead to default to scan, got %q (%v)", got, err)
	}
}

func TestSummarize(t *testing.T) {
	r := mustSimulate(t, SimulateFIFO, beladyString, 3)
	s := Summarize(r)

	if s.Policy != PolicyFIFO || s.Requests != 12 || s.Faults != 9 || s.Hits != 3 {
		t.Errorf("Unexpected summary %+v", s)
	}
	if !s.HitRatioDefined || s.HitRatio != 25.0 {
		t.Errorf("Expected hit ratio 25%%, got %v (defined=%v)", s.HitRatio, s.HitRatioDefined)
	}
}
