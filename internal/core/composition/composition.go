// Package composition computes nucleotide counts and GC statistics.
package composition

import (
	"gonum.org/v1/gonum/stat"

	"github.com/baditaflorin/go_sequence_tools/internal/core/domain"
)

// GCFraction returns (G+C)/len(seq), counting case-insensitively. The
// denominator is the full byte length, so non-nucleotide characters lower the
// fraction. Empty input yields 0.
func GCFraction(seq string) float64 {
	if len(seq) == 0 {
		return 0
	}
	gc := 0
	for i := 0; i < len(seq); i++ {
		switch seq[i] {
		case 'G', 'g', 'C', 'c':
			gc++
		}
	}
	return float64(gc) / float64(len(seq))
}

// Analyze counts bases and computes GC percentages over non-overlapping
// windows of the given size. A window <= 0 or larger than the sequence uses
// the whole sequence as a single window. A trailing window shorter than the
// window size is still reported.
func Analyze(seq string, window int) domain.Composition {
	counts := map[string]int{"A": 0, "C": 0, "G": 0, "T": 0, "Other": 0}
	for i := 0; i < len(seq); i++ {
		switch seq[i] {
		case 'A', 'a':
			counts["A"]++
		case 'C', 'c':
			counts["C"]++
		case 'G', 'g':
			counts["G"]++
		case 'T', 't':
			counts["T"]++
		default:
			counts["Other"]++
		}
	}

	c := domain.Composition{
		Length:    len(seq),
		Counts:    counts,
		GCContent: GCFraction(seq),
	}
	if len(seq) == 0 {
		return c
	}

	if window <= 0 || window > len(seq) {
		window = len(seq)
	}
	c.Window = window

	windows := make([]float64, 0, (len(seq)+window-1)/window)
	for start := 0; start < len(seq); start += window {
		end := start + window
		if end > len(seq) {
			end = len(seq)
		}
		windows = append(windows, GCFraction(seq[start:end])*100)
	}
	c.WindowGC = windows
	c.WindowMean, c.WindowStdDev = stat.MeanStdDev(windows, nil)
	if len(windows) < 2 {
		// The unbiased estimator is undefined for a single sample.
		c.WindowStdDev = 0
	}
	return c
}
