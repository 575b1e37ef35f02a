package loader

import (
	"math"
	"strconv"
	"strings"
)

// boolLiterals are the spellings recognized as booleans. Single-letter
// abbreviations are deliberately absent so codes like "F" stay text.
var boolLiterals = map[string]bool{
	"true": true, "True": true, "TRUE": true,
	"false": false, "False": false, "FALSE": false,
}

// inferCell maps raw cell text onto the pipeline's value model. Only
// the empty cell becomes null; missing-value sentinels stay text for
// the value normalizer.
func inferCell(cell string) interface{} {
	if cell == "" {
		return nil
	}
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return cell
	}
	// ParseFloat accepts NaN and Inf spellings; those stay text so
	// tables never hold non-finite numbers.
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	if b, ok := boolLiterals[trimmed]; ok {
		return b
	}
	return cell
}
