// Package metrics adapts third-party edit-distance implementations to the
// engine's metric shape. The engine never computes distances itself.
package metrics

import (
	"github.com/agnivade/levenshtein"
	"github.com/antzucaro/matchr"
)

// DamerauLevenshtein counts insertions, deletions, substitutions, and
// transpositions. The usual choice for address-style text, where swapped
// characters are common typos.
func DamerauLevenshtein(left, right string) int {
	return matchr.DamerauLevenshtein(left, right)
}

// OSA is the optimal string alignment variant of DamerauLevenshtein: no
// substring is edited more than once, so some transposition chains cost
// more than under the unrestricted metric.
func OSA(left, right string) int {
	return matchr.OSA(left, right)
}

// Levenshtein counts insertions, deletions, and substitutions only.
func Levenshtein(left, right string) int {
	return levenshtein.ComputeDistance(left, right)
}
