// Package stats provides the numeric primitives behind the distribution
// transforms: quantiles, equal-width histograms, banker's rounding, and
// Tukey fences. Inputs are plain float64 slices with nulls already
// removed by the caller.
package stats

import (
	"fmt"
	"math"
	"sort"
)

// Interpolation selects how a quantile between two order statistics is
// resolved.
type Interpolation int

const (
	// Linear interpolates proportionally between the two neighbors.
	Linear Interpolation = iota
	// Midpoint averages the two neighbors regardless of position.
	Midpoint
)

// Quantile returns the q-th quantile (0 <= q <= 1) of values. The input
// is not modified. An empty input is an error because the statistic is
// undefined.
func Quantile(values []float64, q float64, interp Interpolation) (float64, error) {
	if len(values) == 0 {
		return 0, fmt.Errorf("quantile of empty set")
	}
	if q < 0 || q > 1 {
		return 0, fmt.Errorf("quantile fraction %v out of range", q)
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	h := float64(len(sorted)-1) * q
	lo := int(math.Floor(h))
	hi := int(math.Ceil(h))
	if lo == hi {
		return sorted[lo], nil
	}
	switch interp {
	case Midpoint:
		return (sorted[lo] + sorted[hi]) / 2, nil
	default:
		return sorted[lo] + (h-float64(lo))*(sorted[hi]-sorted[lo]), nil
	}
}

// Mean returns the arithmetic mean. An empty input is an error.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, fmt.Errorf("mean of empty set")
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), nil
}

// Min returns the smallest value. An empty input is an error.
func Min(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, fmt.Errorf("min of empty set")
	}
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m, nil
}

// Max returns the largest value. An empty input is an error.
func Max(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, fmt.Errorf("max of empty set")
	}
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m, nil
}

// RoundHalfEven rounds to the given number of decimals with ties going to
// the even neighbor, matching the rounding used throughout the source
// data contracts.
func RoundHalfEven(x float64, decimals int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	scale := math.Pow(10, float64(decimals))
	return math.RoundToEven(x*scale) / scale
}

// Histogram partitions values into the requested number of equal-width
// intervals spanning the observed min..max and returns the per-bin counts
// together with the bins+1 edges. Intervals are closed on the upper side;
// the first interval also contains the minimum. A zero-width range is an
// error.
func Histogram(values []float64, bins int) (counts []int, edges []float64, err error) {
	if bins <= 0 {
		return nil, nil, fmt.Errorf("histogram needs at least one bin")
	}
	if len(values) == 0 {
		return nil, nil, fmt.Errorf("histogram of empty set")
	}
	lo, _ := Min(values)
	hi, _ := Max(values)
	if lo == hi {
		return nil, nil, fmt.Errorf("histogram range is empty (all values equal %v)", lo)
	}

	edges = make([]float64, bins+1)
	for i := 0; i <= bins; i++ {
		edges[i] = lo + (hi-lo)*float64(i)/float64(bins)
	}
	edges[bins] = hi

	counts = make([]int, bins)
	for _, v := range values {
		counts[binIndex(v, edges)]++
	}
	return counts, edges, nil
}

// binIndex locates the bin of v among the edges: the first bin whose
// upper edge is >= v. The minimum lands in bin 0.
func binIndex(v float64, edges []float64) int {
	for i := 1; i < len(edges); i++ {
		if v <= edges[i] {
			return i - 1
		}
	}
	return len(edges) - 2
}

// FiveNumber is the classic five-number summary with linear-interpolation
// quartiles.
type FiveNumber struct {
	Min           float64
	FirstQuartile float64
	Median        float64
	ThirdQuartile float64
	Max           float64
}

// Summarize computes the five-number summary of values. An empty input is
// an error.
func Summarize(values []float64) (FiveNumber, error) {
	if len(values) == 0 {
		return FiveNumber{}, fmt.Errorf("summary of empty set")
	}
	mn, _ := Min(values)
	mx, _ := Max(values)
	q1, err := Quantile(values, 0.25, Linear)
	if err != nil {
		return FiveNumber{}, err
	}
	med, err := Quantile(values, 0.5, Linear)
	if err != nil {
		return FiveNumber{}, err
	}
	q3, err := Quantile(values, 0.75, Linear)
	if err != nil {
		return FiveNumber{}, err
	}
	return FiveNumber{Min: mn, FirstQuartile: q1, Median: med, ThirdQuartile: q3, Max: mx}, nil
}

// TukeyFences returns the display bounds first_quartile - 1.5*IQR and
// third_quartile + 1.5*IQR.
func TukeyFences(q1, q3 float64) (lower, upper float64) {
	iqr := q3 - q1
	return q1 - 1.5*iqr, q3 + 1.5*iqr
}
