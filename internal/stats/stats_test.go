package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantile(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		q      float64
		interp Interpolation
		want   float64
	}{
		{name: "linear q1 of 1..5", values: []float64{1, 2, 3, 4, 5}, q: 0.25, interp: Linear, want: 2},
		{name: "linear q1 of 1..4", values: []float64{1, 2, 3, 4}, q: 0.25, interp: Linear, want: 1.75},
		{name: "midpoint q1 of 1..4", values: []float64{1, 2, 3, 4}, q: 0.25, interp: Midpoint, want: 1.5},
		{name: "midpoint on exact position", values: []float64{1, 2, 3, 4, 5}, q: 0.5, interp: Midpoint, want: 3},
		{name: "unsorted input", values: []float64{5, 1, 4, 2, 3}, q: 0.75, interp: Linear, want: 4},
		{name: "single value", values: []float64{7}, q: 0.25, interp: Midpoint, want: 7},
		{name: "q zero", values: []float64{3, 1, 2}, q: 0, interp: Linear, want: 1},
		{name: "q one", values: []float64{3, 1, 2}, q: 1, interp: Linear, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Quantile(tt.values, tt.q, tt.interp)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestQuantileErrors(t *testing.T) {
	_, err := Quantile(nil, 0.5, Linear)
	assert.Error(t, err)

	_, err = Quantile([]float64{1}, 1.5, Linear)
	assert.Error(t, err)
}

func TestQuantileDoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	_, err := Quantile(values, 0.5, Linear)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestMeanMinMax(t *testing.T) {
	values := []float64{2, 4, 9}

	mean, err := Mean(values)
	require.NoError(t, err)
	assert.InDelta(t, 5, mean, 1e-12)

	mn, err := Min(values)
	require.NoError(t, err)
	assert.Equal(t, 2.0, mn)

	mx, err := Max(values)
	require.NoError(t, err)
	assert.Equal(t, 9.0, mx)

	_, err = Mean(nil)
	assert.Error(t, err)
}

func TestRoundHalfEven(t *testing.T) {
	tests := []struct {
		name     string
		x        float64
		decimals int
		want     float64
	}{
		{name: "round down", x: 1.234, decimals: 2, want: 1.23},
		{name: "round up", x: 1.236, decimals: 2, want: 1.24},
		{name: "tie to even low", x: 0.5, decimals: 0, want: 0},
		{name: "tie to even high", x: 1.5, decimals: 0, want: 2},
		{name: "tie to even at two decimals", x: 0.125, decimals: 2, want: 0.12},
		{name: "negative value", x: -2.5, decimals: 0, want: -2},
		{name: "four decimals", x: 0.123456, decimals: 4, want: 0.1235},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, RoundHalfEven(tt.x, tt.decimals), 1e-12)
		})
	}
}

func TestHistogram(t *testing.T) {
	values := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	counts, edges, err := Histogram(values, 10)
	require.NoError(t, err)
	require.Len(t, counts, 10)
	require.Len(t, edges, 11)

	assert.Equal(t, 0.0, edges[0])
	assert.Equal(t, 10.0, edges[10])

	// 0 and 1 land in the first bin (min included), every other value on
	// an edge lands in the bin closing at that edge
	assert.Equal(t, []int{2, 1, 1, 1, 1, 1, 1, 1, 1, 1}, counts)

	total := 0
	for _, c := range counts {
		total += c
	}
	assert.Equal(t, len(values), total)
}

func TestHistogramEdgesIncrease(t *testing.T) {
	_, edges, err := Histogram([]float64{0, 2.5, 5}, 10)
	require.NoError(t, err)
	for i := 1; i < len(edges); i++ {
		assert.Greater(t, edges[i], edges[i-1])
	}
}

func TestHistogramErrors(t *testing.T) {
	_, _, err := Histogram(nil, 10)
	assert.Error(t, err)

	_, _, err = Histogram([]float64{3, 3, 3}, 10)
	assert.Error(t, err, "zero-width range cannot be binned")

	_, _, err = Histogram([]float64{1, 2}, 0)
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	fn, err := Summarize([]float64{1, 2, 3, 4, 5})
	require.NoError(t, err)
	assert.Equal(t, 1.0, fn.Min)
	assert.Equal(t, 2.0, fn.FirstQuartile)
	assert.Equal(t, 3.0, fn.Median)
	assert.Equal(t, 4.0, fn.ThirdQuartile)
	assert.Equal(t, 5.0, fn.Max)

	single, err := Summarize([]float64{2.5})
	require.NoError(t, err)
	assert.Equal(t, 2.5, single.Median)
	assert.Equal(t, 2.5, single.FirstQuartile)

	_, err = Summarize(nil)
	assert.Error(t, err)
}

func TestTukeyFences(t *testing.T) {
	lo, hi := TukeyFences(2, 4)
	assert.InDelta(t, -1, lo, 1e-12)
	assert.InDelta(t, 7, hi, 1e-12)

	lo, hi = TukeyFences(3, 3)
	assert.Equal(t, 3.0, lo)
	assert.Equal(t, 3.0, hi)
}
