// Package histogram bins a terminal-value distribution into fixed-width
// buckets for client-side chart rendering.
package histogram

// Bin is one bucket of the histogram; the interval is [Low, High)
// except for the last bin, which is closed on both ends.
type Bin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// Histogram is the binned view of a distribution.
type Histogram struct {
	Bins []Bin   `json:"bins"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// Compute bins values into binCount equal-width buckets spanning the
// observed range. An empty input or non-positive bin count yields an
// empty histogram; a degenerate range collapses into a single bin.
func Compute(values []float64, binCount int) Histogram {
	if len(values) == 0 || binCount <= 0 {
		return Histogram{}
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	if min == max {
		return Histogram{
			Bins: []Bin{{Low: min, High: max, Count: len(values)}},
			Min:  min,
			Max:  max,
		}
	}

	width := (max - min) / float64(binCount)
	bins := make([]Bin, binCount)
	for i := range bins {
		bins[i].Low = min + float64(i)*width
		bins[i].High = min + float64(i+1)*width
	}
	bins[binCount-1].High = max

	for _, v := range values {
		idx := int((v - min) / width)
		if idx >= binCount {
			idx = binCount - 1
		}
		bins[idx].Count++
	}

	return Histogram{Bins: bins, Min: min, Max: max}
}
