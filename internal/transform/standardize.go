package transform

import (
	"strings"
	"unicode"

	"portaletl/internal/tabular"
)

// truthyMarker is the literal the source data uses to mean "included".
const truthyMarker = "Y"

// strippedRunes are removed from column names outright; separatorRunes
// become underscores.
const (
	strippedRunes  = "#@&*^?()%$!/"
	separatorRunes = " -."
)

// missingSentinels are the tokens the source files use for a missing
// value. Cells matching one of them exactly are rewritten to null.
var missingSentinels = map[string]bool{
	"n/a": true,
	"N/A": true,
	"n/A": true,
	"N/a": true,
}

// StandardizeColumnNames returns a table whose column names have
// problematic punctuation removed, separators replaced with underscores,
// and all characters lowercased. Applying it twice gives the same result
// as applying it once.
func StandardizeColumnNames(t *tabular.Table) *tabular.Table {
	mapping := make(map[string]string)
	for _, c := range t.Columns() {
		if cleaned := standardizeName(c); cleaned != c {
			mapping[c] = cleaned
		}
	}
	return t.Rename(mapping)
}

func standardizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case strings.ContainsRune(strippedRunes, r):
		case strings.ContainsRune(separatorRunes, r):
			b.WriteRune('_')
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// StandardizeValues returns a table with the known missing-value
// sentinels rewritten to null. Non-string cells pass through untouched,
// so mixed-type columns never fail the operation.
func StandardizeValues(t *tabular.Table) *tabular.Table {
	out := t.Clone()
	for _, r := range out.Rows() {
		for k, v := range r {
			if s, ok := v.(string); ok && missingSentinels[s] {
				r[k] = nil
			}
		}
	}
	return out
}

// RenameColumns returns a table with columns renamed per the mapping.
// Columns absent from the mapping keep their names; a nil mapping is a
// no-op copy.
func RenameColumns(t *tabular.Table, mapping map[string]string) *tabular.Table {
	return t.Rename(mapping)
}
