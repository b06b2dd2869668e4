// Package note defines the immutable scheduled event the MML compiler
// produces and the synthesis pipeline consumes.
package note

import (
	"github.com/quietwire/mmlfm/internal/envelope"
	"github.com/quietwire/mmlfm/internal/instrument"
)

// Note is an immutable scheduled event: an instrument sounding a
// frequency for a duration at a volume, starting at an absolute time.
type Note struct {
	Instrument instrument.Instrument
	Frequency  float64
	Start      float64
	Duration   float64
	Volume     float64
}

// New constructs a Note.
func New(inst instrument.Instrument, freq, start, duration, volume float64) Note {
	return Note{Instrument: inst, Frequency: freq, Start: start, Duration: duration, Volume: volume}
}

// Before reports whether t is strictly before the note starts.
func (n Note) Before(t float64) bool {
	return t < n.Start
}

// After reports whether t is strictly after the note's sound,
// including its instrument's release tail, has ended.
func (n Note) After(t float64) bool {
	return t > n.Start+n.Duration+n.Instrument.ReleaseLength()
}

// Active reports whether t falls within the note's sounding window
// (including release tail), i.e. neither Before nor After.
func (n Note) Active(t float64) bool {
	return !n.Before(t) && !n.After(t)
}

// Play returns the note's contribution to the output at time t. The
// caller is responsible for only calling this while Active(t) holds;
// Play does not check that window itself, and before the note's start
// its result is not necessarily zero.
func (n Note) Play(t float64) float64 {
	elapsed := t - n.Start
	rel := float64(envelope.NoRelease)
	if elapsed >= n.Duration {
		rel = n.Duration
	}
	return n.Volume * n.Instrument.Note(n.Frequency, elapsed, rel)
}
