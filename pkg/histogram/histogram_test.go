package histogram

import (
	"testing"
)

func TestComputeBinsAllValues(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	hist := Compute(values, 5)

	if len(hist.Bins) != 5 {
		t.Fatalf("bin count = %d, expected 5", len(hist.Bins))
	}
	total := 0
	for _, bin := range hist.Bins {
		total += bin.Count
	}
	if total != len(values) {
		t.Errorf("binned %d values, expected %d", total, len(values))
	}
	if hist.Min != 1 || hist.Max != 10 {
		t.Errorf("range = [%v, %v], expected [1, 10]", hist.Min, hist.Max)
	}
}

func TestComputeBinEdgesAreContiguous(t *testing.T) {
	values := []float64{0, 25, 50, 75, 100}
	hist := Compute(values, 4)

	for i := 1; i < len(hist.Bins); i++ {
		if hist.Bins[i].Low != hist.Bins[i-1].High {
			t.Errorf("bin %d low %v does not continue bin %d high %v",
				i, hist.Bins[i].Low, i-1, hist.Bins[i-1].High)
		}
	}
	last := hist.Bins[len(hist.Bins)-1]
	if last.High != 100 {
		t.Errorf("last bin high = %v, expected the maximum 100", last.High)
	}
	// The maximum value lands in the final (closed) bin.
	if last.Count == 0 {
		t.Error("expected the maximum value to be counted in the last bin")
	}
}

func TestComputeEdgeCases(t *testing.T) {
	if hist := Compute(nil, 10); len(hist.Bins) != 0 {
		t.Error("expected an empty histogram for empty input")
	}
	if hist := Compute([]float64{1, 2}, 0); len(hist.Bins) != 0 {
		t.Error("expected an empty histogram for a non-positive bin count")
	}

	hist := Compute([]float64{7, 7, 7}, 4)
	if len(hist.Bins) != 1 {
		t.Fatalf("degenerate range should collapse to one bin, got %d", len(hist.Bins))
	}
	if hist.Bins[0].Count != 3 {
		t.Errorf("degenerate bin count = %d, expected 3", hist.Bins[0].Count)
	}
}
