// Package envelope implements amplitude-over-time shaping for
// instruments. An Envelope is a pure function of (time-since-note-start,
// release time) to an amplitude in [0,1]; it is stateless and immutable,
// matching the Oscillator contract in internal/oscillator.
package envelope

// NoRelease is passed as the release time when a note has not yet been
// released (rel = bottom in the spec's notation).
const NoRelease = -1

// Envelope shapes a note's amplitude over time. Sample returns the
// amplitude at t seconds since the note's start; rel is the number of
// seconds since the note's start at which it was released, or
// NoRelease if it has not been released yet. ReleaseLength returns the
// tail, in seconds, that the envelope still needs after release before
// it reaches silence.
type Envelope interface {
	Sample(t, rel float64) float64
	ReleaseLength() float64
}

// shortestNote is 240/(64*256) seconds: the shortest note duration
// reachable at the fastest tempo (256 BPM) and shortest length (1/64).
const shortestNote = 240.0 / (64.0 * 256.0)

// DefaultAttackLength is the attack (and release) time of the default
// Attack-Release envelope: one tenth of the shortest possible note.
const DefaultAttackLength = shortestNote * 0.1

// AR is the default Attack-Release envelope: amplitude ramps linearly
// from 0 to peak over attack seconds, holds at peak, then on release
// ramps linearly from whatever amplitude it held at release time down
// to 0 over release seconds.
type AR struct {
	Peak           float64
	AttackLength   float64
	ReleaseLengthS float64
}

// DefaultAR returns the engine's default envelope: peak 1.0, attack and
// release both DefaultAttackLength.
func DefaultAR() AR {
	return AR{Peak: 1.0, AttackLength: DefaultAttackLength, ReleaseLengthS: DefaultAttackLength}
}

func (a AR) preRelease(t float64) float64 {
	if a.AttackLength <= 0 || t >= a.AttackLength {
		return a.Peak
	}
	return (t / a.AttackLength) * a.Peak
}

func (a AR) Sample(t, rel float64) float64 {
	if rel < 0 {
		return a.preRelease(t)
	}
	releasedAt := a.preRelease(rel)
	if a.ReleaseLengthS <= 0 {
		return 0
	}
	if t >= rel+a.ReleaseLengthS {
		return 0
	}
	elapsed := t - rel
	if elapsed <= 0 {
		return releasedAt
	}
	return releasedAt * (1 - elapsed/a.ReleaseLengthS)
}

func (a AR) ReleaseLength() float64 { return a.ReleaseLengthS }

// ADSR is a richer envelope offered for custom instruments: attack,
// decay to a sustain level, hold at sustain, then release to 0.
type ADSR struct {
	Peak           float64
	AttackLength   float64
	DecayLength    float64
	SustainLevel   float64
	ReleaseLengthS float64
}

func (a ADSR) preRelease(t float64) float64 {
	switch {
	case a.AttackLength > 0 && t < a.AttackLength:
		return (t / a.AttackLength) * a.Peak
	case a.DecayLength > 0 && t < a.AttackLength+a.DecayLength:
		frac := (t - a.AttackLength) / a.DecayLength
		return a.Peak + (a.SustainLevel-a.Peak)*frac
	default:
		return a.SustainLevel
	}
}

func (a ADSR) Sample(t, rel float64) float64 {
	if rel < 0 {
		return a.preRelease(t)
	}
	releasedAt := a.preRelease(rel)
	if a.ReleaseLengthS <= 0 {
		return 0
	}
	elapsed := t - rel
	if elapsed >= a.ReleaseLengthS {
		return 0
	}
	if elapsed <= 0 {
		return releasedAt
	}
	return releasedAt * (1 - elapsed/a.ReleaseLengthS)
}

func (a ADSR) ReleaseLength() float64 { return a.ReleaseLengthS }
