// Package oscillator implements the pure waveform generators the
// engine's instruments are built from. Every Oscillator is a stateless
// function of (frequency, time-since-note-start); the same inputs
// always produce the same sample.
package oscillator

import "math"

const twoPi = 2 * math.Pi

// Oscillator is a pure waveform generator: given a frequency in Hz and
// a time offset in seconds since the owning note started, it returns a
// sample in [-1, 1]. Implementations must be side-effect free and
// immutable after construction.
type Oscillator interface {
	Sample(freq, t float64) float64
}

// Func adapts a plain function to the Oscillator interface, for
// user-supplied waveforms.
type Func func(freq, t float64) float64

func (f Func) Sample(freq, t float64) float64 { return f(freq, t) }

type sineOscillator struct{}

// Sine returns the pure sine wave oscillator: sin(2*pi*f*t).
func Sine() Oscillator { return sineOscillator{} }

func (sineOscillator) Sample(freq, t float64) float64 {
	return math.Sin(twoPi * freq * t)
}

type triangleOscillator struct{}

// Triangle returns a piecewise-linear triangle wave in [-1,1], derived
// from the sine wave via asin(sin(x))/(pi/2).
func Triangle() Oscillator { return triangleOscillator{} }

func (triangleOscillator) Sample(freq, t float64) float64 {
	return math.Asin(math.Sin(twoPi*freq*t)) / (math.Pi / 2)
}

type squareOscillator struct{}

// Square returns a square wave: the sign of sin(2*pi*f*t), with ties
// (sin == 0) resolved to +1.
func Square() Oscillator { return squareOscillator{} }

func (squareOscillator) Sample(freq, t float64) float64 {
	s := math.Sin(twoPi * freq * t)
	if s == 0 {
		return 1
	}
	return math.Copysign(1, s)
}

type sawOscillator struct{}

// Saw returns a centered sawtooth wave in [-1,1]: 2*(ft - floor(ft+0.5)).
func Saw() Oscillator { return sawOscillator{} }

func (sawOscillator) Sample(freq, t float64) float64 {
	ft := freq * t
	return 2 * (ft - math.Floor(ft+0.5))
}

type noiseOscillator struct{}

// Noise returns a deterministic pseudo-random oscillator in [-1,1]:
// the same (freq, t) pair always hashes to the same sample.
func Noise() Oscillator { return noiseOscillator{} }

func (noiseOscillator) Sample(freq, t float64) float64 {
	return hashToUnit(twoPi * freq * t)
}

// hashToUnit maps an arbitrary float to a deterministic value in
// [-1, 1] via a sine-based hash, the same technique the corpus uses
// for sample-and-hold LFO noise.
func hashToUnit(x float64) float64 {
	v := math.Sin(x * 12345.6789)
	v = v - math.Floor(v)
	return v*2 - 1
}

type rectangularOscillator struct {
	duty float64
}

// Rectangular returns a rectangular (pulse) wave oscillator with the
// given duty cycle in (0,1): +1 for the first duty*2*pi of each
// period, -1 for the remainder.
func Rectangular(duty float64) Oscillator {
	return rectangularOscillator{duty: duty}
}

func (r rectangularOscillator) Sample(freq, t float64) float64 {
	period := math.Mod(twoPi*freq*t, twoPi)
	if period < 0 {
		period += twoPi
	}
	if period <= r.duty*twoPi {
		return 1
	}
	return -1
}
