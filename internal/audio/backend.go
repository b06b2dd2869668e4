// Package audio adapts the engine's sample-producing function to two
// real-time audio backends. Neither backend is part of the engine's
// core: per the engine's own framing the host audio backend is always
// an external collaborator, but a library needs at least one working
// adapter to be useful standalone.
package audio

// Backend is a minimal real-time playback control surface: start
// pulling samples, stop pulling them.
type Backend interface {
	Play() error
	Stop() error
}

// SampleFunc produces one sample given the time elapsed, in seconds,
// since the previous call. It is expected to be bound to a single
// channel of a Venue.GetSample call.
type SampleFunc func(delta float64) float64
