package transform

import (
	"fmt"

	apperrors "portaletl/internal/errors"
	"portaletl/internal/stats"
	"portaletl/internal/tabular"
	"portaletl/pkg/contracts/domain"
)

// distributionBins is the fixed histogram resolution of every published
// score distribution.
const distributionBins = 10

// CalculateScoreDistribution summarizes a numeric score column as a
// ten-bin histogram plus headline statistics.
//
// Rows are first filtered to the scored subset: when isScoredCol is
// non-empty only rows whose flag equals "Y" count; otherwise rows where
// any column equals "Y" count. Two synthetic observations, 0 and
// upperBound, are added before binning so the bins always span the full
// theoretical range, and their contribution is subtracted from the first
// and last counts afterwards. The headline statistics are computed over
// the real observations only, with quartiles using midpoint
// interpolation.
//
// A target column that cannot be coerced to numeric fails with a
// type-coercion error; an empty scored subset fails with a validation
// error.
func CalculateScoreDistribution(t *tabular.Table, col, isScoredCol string, upperBound float64) (*domain.ScoreDistribution, error) {
	if !t.HasColumn(col) {
		return nil, apperrors.NewMissingDataError(fmt.Sprintf("column %s", col))
	}

	var filtered *tabular.Table
	if isScoredCol != "" {
		if !t.HasColumn(isScoredCol) {
			return nil, apperrors.NewMissingDataError(fmt.Sprintf("column %s", isScoredCol))
		}
		filtered = t.Filter(func(r tabular.Row) bool {
			return r[isScoredCol] == truthyMarker
		})
	} else {
		filtered = t.Filter(func(r tabular.Row) bool {
			for _, v := range r {
				if v == truthyMarker {
					return true
				}
			}
			return false
		})
	}

	values, err := filtered.NumericValues(col)
	if err != nil {
		return nil, apperrors.NewCoercionError(fmt.Sprintf("column %s is not numeric", col), err)
	}
	if len(values) == 0 {
		return nil, apperrors.NewValidationError(fmt.Sprintf("no scored rows for column %s", col)).
			WithContext("rows", t.NumRows())
	}

	augmented := make([]float64, 0, len(values)+2)
	augmented = append(augmented, values...)
	augmented = append(augmented, 0, upperBound)

	counts, edges, err := stats.Histogram(augmented, distributionBins)
	if err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("cannot bin column %s: %v", col, err))
	}
	counts[0]--
	counts[len(counts)-1]--

	bins := make([][2]float64, distributionBins)
	lower := 0.0
	for i := 1; i < len(edges); i++ {
		upper := stats.RoundHalfEven(edges[i], 2)
		bins[i-1] = [2]float64{lower, upper}
		lower = upper
	}

	mn, _ := stats.Min(values)
	mx, _ := stats.Max(values)
	mean, _ := stats.Mean(values)
	q1, err := stats.Quantile(values, 0.25, stats.Midpoint)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	q3, err := stats.Quantile(values, 0.75, stats.Midpoint)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	return &domain.ScoreDistribution{
		Distribution:  counts,
		Bins:          bins,
		Min:           stats.RoundHalfEven(mn, 4),
		Max:           stats.RoundHalfEven(mx, 4),
		Mean:          stats.RoundHalfEven(mean, 4),
		FirstQuartile: stats.RoundHalfEven(q1, 0),
		ThirdQuartile: stats.RoundHalfEven(q3, 0),
	}, nil
}

// distributionByGroup computes the five-number summary of col within
// each group, then widens min and max to the Tukey fences. All five
// statistics are rounded to 4 decimals. Groups whose column holds no
// values are skipped. Output columns are the grouping columns followed
// by min, max, first_quartile, median, third_quartile, ordered by
// ascending group key.
func distributionByGroup(t *tabular.Table, grouping []string, col string) (*tabular.Table, error) {
	for _, c := range grouping {
		if !t.HasColumn(c) {
			return nil, apperrors.NewMissingDataError(fmt.Sprintf("grouping column %s", c))
		}
	}
	if !t.HasColumn(col) {
		return nil, apperrors.NewMissingDataError(fmt.Sprintf("column %s", col))
	}

	cols := append(append([]string(nil), grouping...), "min", "max", "first_quartile", "median", "third_quartile")
	out := tabular.New(cols...)
	for _, g := range t.GroupBy(grouping...) {
		values, err := g.NumericValues(col)
		if err != nil {
			return nil, apperrors.NewCoercionError(fmt.Sprintf("column %s is not numeric", col), err)
		}
		if len(values) == 0 {
			continue
		}
		fn, err := stats.Summarize(values)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		lo, hi := stats.TukeyFences(fn.FirstQuartile, fn.ThirdQuartile)

		row := make(tabular.Row, len(cols))
		for _, c := range grouping {
			row[c] = g.Key[c]
		}
		row["min"] = stats.RoundHalfEven(lo, 4)
		row["max"] = stats.RoundHalfEven(hi, 4)
		row["first_quartile"] = stats.RoundHalfEven(fn.FirstQuartile, 4)
		row["median"] = stats.RoundHalfEven(fn.Median, 4)
		row["third_quartile"] = stats.RoundHalfEven(fn.ThirdQuartile, 4)
		out.Append(row)
	}
	return out, nil
}
