// Package mmlfm is the public surface of the MML synthesis engine: it
// compiles MML voice strings into playable pieces and schedules them
// through a Venue for a host audio callback to drain.
package mmlfm

import (
	"github.com/quietwire/mmlfm/internal/maestro"
	"github.com/quietwire/mmlfm/internal/mml"
	"github.com/quietwire/mmlfm/internal/pitch"
	"github.com/quietwire/mmlfm/internal/venue"
	"github.com/quietwire/mmlfm/internal/voice"
)

// InstrumentMap resolves the keys the MML "IX" command looks up custom
// instruments by. Re-exported from internal/mml so callers never need
// to import an internal package.
type InstrumentMap = mml.InstrumentMap

// DefaultInstrumentKey is the sentinel every InstrumentMap must carry
// an entry for.
const DefaultInstrumentKey = mml.DefaultInstrumentKey

// DefaultInstrumentMap returns a minimal InstrumentMap containing only
// the default square-wave instrument.
func DefaultInstrumentMap() InstrumentMap { return mml.DefaultInstrumentMap() }

// InvalidMMLError is returned by BuildVoice and the queueing helpers
// whenever an MML voice string fails to compile. Its Kind identifies
// the class of failure (see internal/mml's ErrorKind).
type InvalidMMLError = mml.Error

// BuildVoice compiles a single MML voice string, using the engine's
// built-in 108-entry pitch table and, if instruments is nil, the
// default instrument map.
func BuildVoice(voiceString string, instruments InstrumentMap) (*voice.Voice, error) {
	return mml.NewParser().BuildVoice(voiceString, instruments, pitch.Build())
}

// CompileMaestro compiles every voice string in voiceStrings into a
// single Maestro, dropping voices that compiled to zero notes. It
// returns the first *InvalidMMLError encountered, if any.
func CompileMaestro(voiceStrings []string, instruments InstrumentMap) (*maestro.Maestro, error) {
	voices := make([]*voice.Voice, 0, len(voiceStrings))
	for _, vs := range voiceStrings {
		v, err := BuildVoice(vs, instruments)
		if err != nil {
			return nil, err
		}
		voices = append(voices, v)
	}
	return maestro.New(voices), nil
}

// Venue is the playback scheduler: a FIFO queue of pieces, a looping
// flag, and a completion callback invoked from the audio thread. Build
// one with NewVenue; unlike the source this engine is modelled on,
// Venue is not a forced process-wide singleton, though applications
// that only ever need one engine may keep a single package-level
// instance themselves.
type Venue struct {
	v *venue.Venue
}

// NewVenue returns an empty, non-looping Venue.
func NewVenue() *Venue {
	return &Venue{v: venue.New()}
}

// QueueMusic compiles voiceStrings into a Maestro and appends it to the
// FIFO program. If instruments is nil, the default instrument map is
// used. Returns an *InvalidMMLError on the first voice that fails to
// compile; the queue is left unchanged in that case.
func (e *Venue) QueueMusic(voiceStrings []string, instruments InstrumentMap) error {
	m, err := CompileMaestro(voiceStrings, instruments)
	if err != nil {
		return err
	}
	e.v.QueueMaestro(m)
	return nil
}

// QueueMaestro appends an already-compiled piece to the FIFO program.
func (e *Venue) QueueMaestro(m *maestro.Maestro) {
	e.v.QueueMaestro(m)
}

// ClearQueue requests the program be cleared, honoured on the Venue's
// next GetSample tick.
func (e *Venue) ClearQueue() { e.v.ClearQueue() }

// ToggleLoop flips whether the head piece restarts on completion
// instead of being dequeued.
func (e *Venue) ToggleLoop() { e.v.ToggleLoop() }

// Looping reports the current loop flag.
func (e *Venue) Looping() bool { return e.v.Looping() }

// SetCompletionCallback installs fn to run on the consumer (audio)
// thread when the program is flushed or drains to empty. fn may call
// QueueMusic or ToggleLoop.
func (e *Venue) SetCompletionCallback(fn func()) { e.v.SetCompletionCallback(fn) }

// GetSample renders one sample of the engine's current output. channel
// must be 0; any other channel returns silence. globalTime is accepted
// for audio-callback signature compatibility but ignored. delta is the
// time in seconds since the previous call.
func (e *Venue) GetSample(channel int, globalTime, delta float64) float64 {
	return e.v.GetSample(channel, globalTime, delta)
}
