// Package maestro bundles the parallel voices that make up one piece.
package maestro

import "github.com/quietwire/mmlfm/internal/voice"

// Maestro is a compiled piece: a set of voices played in parallel,
// averaged at each sample. Voices that compiled to zero notes are
// dropped at construction time.
type Maestro struct {
	voices []*voice.Voice
}

// New bundles voices into a Maestro, dropping any with no notes.
func New(voices []*voice.Voice) *Maestro {
	kept := make([]*voice.Voice, 0, len(voices))
	for _, v := range voices {
		if v.Len() > 0 {
			kept = append(kept, v)
		}
	}
	return &Maestro{voices: kept}
}

// Voices returns the maestro's voices.
func (m *Maestro) Voices() []*voice.Voice { return m.voices }

// Play advances every voice to time t and returns the average of their
// contributions. A Maestro with no voices plays silence.
func (m *Maestro) Play(t float64) float64 {
	if len(m.voices) == 0 {
		return 0
	}
	var sum float64
	for _, v := range m.voices {
		sum += v.Play(t)
	}
	return sum / float64(len(m.voices))
}

// Finished reports whether every voice has finished.
func (m *Maestro) Finished() bool {
	for _, v := range m.voices {
		if !v.Finished() {
			return false
		}
	}
	return true
}

// Loop resets every voice to play from the beginning.
func (m *Maestro) Loop() {
	for _, v := range m.voices {
		v.Loop()
	}
}
