package pitch

import "testing"

func TestBuildLength(t *testing.T) {
	table := Build()
	if len(table) != TableSize {
		t.Fatalf("expected %d entries, got %d", TableSize, len(table))
	}
}

func TestBuildA4Reference(t *testing.T) {
	table := Build()
	if got := table[referenceIndex]; got != referenceFreq {
		t.Fatalf("expected A4 (index %d) = %v, got %v", referenceIndex, referenceFreq, got)
	}
}

func TestBuildOctaveDoubling(t *testing.T) {
	table := Build()
	for n := 0; n+12 < TableSize; n++ {
		lo, hi := table[n], table[n+12]
		if ratio := hi / lo; ratio < 1.999 || ratio > 2.001 {
			t.Fatalf("index %d->%d: expected frequency to double, got ratio %v", n, n+12, ratio)
		}
	}
}

func TestBuildMonotonic(t *testing.T) {
	table := Build()
	for n := 1; n < len(table); n++ {
		if table[n] <= table[n-1] {
			t.Fatalf("table not strictly increasing at index %d: %v <= %v", n, table[n], table[n-1])
		}
	}
}

func TestIndex(t *testing.T) {
	if got := Index(4, 9); got != referenceIndex {
		t.Fatalf("Index(4,9) = %d, want %d", got, referenceIndex)
	}
}

func TestValid(t *testing.T) {
	if !Valid(Build()) {
		t.Fatalf("expected a built table to be valid")
	}
	if Valid(make([]float64, TableSize-1)) {
		t.Fatalf("expected a short table to be invalid")
	}
}
