// Package instrument pairs an oscillator with an envelope.
package instrument

import (
	"github.com/quietwire/mmlfm/internal/envelope"
	"github.com/quietwire/mmlfm/internal/oscillator"
)

// Instrument is an immutable (Oscillator, Envelope) pair. It is a value
// type: copying an Instrument copies its configuration, never shares
// mutable state, so the same Instrument value can be handed to any
// number of Notes.
type Instrument struct {
	Oscillator oscillator.Oscillator
	Envelope   envelope.Envelope
}

// New pairs an oscillator and envelope into an Instrument.
func New(osc oscillator.Oscillator, env envelope.Envelope) Instrument {
	return Instrument{Oscillator: osc, Envelope: env}
}

// Note returns the instrument's sample at time t (seconds since the
// owning note started) for a note of the given frequency, released at
// rel seconds (or envelope.NoRelease if not yet released).
func (i Instrument) Note(freq, t, rel float64) float64 {
	return i.Envelope.Sample(t, rel) * i.Oscillator.Sample(freq, t)
}

// ReleaseLength returns the tail, in seconds, the instrument's envelope
// needs after release before reaching silence.
func (i Instrument) ReleaseLength() float64 {
	return i.Envelope.ReleaseLength()
}

// Default is the parser's starting instrument: a square wave with the
// default Attack-Release envelope.
func Default() Instrument {
	return New(oscillator.Square(), envelope.DefaultAR())
}
