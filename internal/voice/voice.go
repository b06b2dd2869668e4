// Package voice implements a single melodic line: an ordered list of
// notes, a playback cursor into that list, and the set of notes
// currently sounding.
package voice

import "github.com/quietwire/mmlfm/internal/note"

// Voice holds one compiled melodic line. Notes is never mutated after
// construction, so the active set can safely hold indices into it
// rather than pointers (per the source's own note about avoiding
// back-pointers into a slice that must not reallocate).
type Voice struct {
	notes  []note.Note
	index  int
	active []int
}

// New builds a Voice from a non-decreasing sequence of note start
// times. The caller (the MML compiler) is responsible for that
// ordering; New does not re-sort.
func New(notes []note.Note) *Voice {
	return &Voice{notes: notes}
}

// Len returns the number of notes in the voice.
func (v *Voice) Len() int { return len(v.notes) }

// Notes returns the voice's note list. Callers must not mutate it.
func (v *Voice) Notes() []note.Note { return v.notes }

// Play advances the voice to time t and returns the sum of every
// currently active note's contribution. Successive calls must supply
// non-decreasing t.
func (v *Voice) Play(t float64) float64 {
	for v.index < len(v.notes) && v.notes[v.index].After(t) {
		v.index++
	}

	if v.index == len(v.notes) {
		return v.sumAndPrune(t)
	}

	if v.notes[v.index].Before(t) {
		return v.sumAndPrune(t)
	}

	for v.index < len(v.notes) && !v.notes[v.index].Before(t) {
		v.active = append(v.active, v.index)
		v.index++
	}
	return v.sumAndPrune(t)
}

// sumAndPrune sums every active note's contribution at t, then removes
// any active note that has expired by t.
func (v *Voice) sumAndPrune(t float64) float64 {
	var sum float64
	kept := v.active[:0]
	for _, idx := range v.active {
		n := v.notes[idx]
		sum += n.Play(t)
		if !n.After(t) {
			kept = append(kept, idx)
		}
	}
	v.active = kept
	return sum
}

// Finished reports whether the voice has consumed every note and has
// nothing left sounding.
func (v *Voice) Finished() bool {
	return v.index == len(v.notes) && len(v.active) == 0
}

// Loop resets the voice to play from the beginning.
func (v *Voice) Loop() {
	v.index = 0
	v.active = v.active[:0]
}
