// Package pitch builds the equal-tempered frequency table the rest of
// the engine indexes into.
package pitch

import "math"

// TableSize is the number of entries a valid pitch table must have:
// 9 octaves of 12 semitones each.
const TableSize = 9 * 12

// Octaves is the number of octaves spanned by the table.
const Octaves = 9

// SemitonesPerOctave is the number of entries per octave.
const SemitonesPerOctave = 12

// referenceIndex is the table index of A4 (octave 4, semitone index 9),
// which is pinned to referenceFreq.
const referenceIndex = 4*SemitonesPerOctave + 9

const referenceFreq = 440.0

// Build returns the 108-entry 12-TET frequency table, index n holding
// 440 * 2^((n-57)/12).
func Build() []float64 {
	table := make([]float64, TableSize)
	for n := range table {
		table[n] = referenceFreq * math.Pow(2, float64(n-referenceIndex)/SemitonesPerOctave)
	}
	return table
}

// Index computes the table index for a given octave (0..8) and
// semitone offset within the octave (0..11), without bounds checking.
func Index(octave, semitone int) int {
	return octave*SemitonesPerOctave + semitone
}

// Valid reports whether table has the length a well-formed pitch table
// must have.
func Valid(table []float64) bool {
	return len(table) == TableSize
}
