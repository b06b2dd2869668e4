// Package config loads custom InstrumentMap definitions from a small
// YAML document, so MML's "IX" command can reach instruments defined
// outside of Go source.
package config

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v2"

	"github.com/quietwire/mmlfm/internal/envelope"
	"github.com/quietwire/mmlfm/internal/instrument"
	"github.com/quietwire/mmlfm/internal/mml"
	"github.com/quietwire/mmlfm/internal/oscillator"
)

// instrumentDoc mirrors the on-disk shape described in SPEC_FULL.md §4.7.
type instrumentDoc struct {
	Default     instrumentSpec            `yaml:"default"`
	Instruments map[string]instrumentSpec `yaml:"instruments"`
}

type instrumentSpec struct {
	Oscillator string        `yaml:"oscillator"`
	Duty       float64       `yaml:"duty"`
	Envelope   *envelopeSpec `yaml:"envelope"`
}

type envelopeSpec struct {
	Attack  float64 `yaml:"attack"`
	Release float64 `yaml:"release"`
	Peak    float64 `yaml:"peak"`
}

// LoadInstrumentMap parses a YAML document into an mml.InstrumentMap.
// The "default" section fills mml.DefaultInstrumentKey; when it is
// absent, that entry is a square wave with the default envelope.
// "instruments" maps
// single-character keys to instruments reachable via MML's "IX"
// command. Keys longer than one rune are rejected.
func LoadInstrumentMap(r io.Reader) (mml.InstrumentMap, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading instrument config: %w", err)
	}

	var doc instrumentDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing instrument config: %w", err)
	}

	defaultInst, err := buildInstrument(doc.Default)
	if err != nil {
		return nil, fmt.Errorf("default instrument: %w", err)
	}

	out := mml.InstrumentMap{mml.DefaultInstrumentKey: defaultInst}
	for key, spec := range doc.Instruments {
		runes := []rune(key)
		if len(runes) != 1 {
			return nil, fmt.Errorf("instrument key %q must be exactly one character", key)
		}
		inst, err := buildInstrument(spec)
		if err != nil {
			return nil, fmt.Errorf("instrument %q: %w", key, err)
		}
		out[runes[0]] = inst
	}
	return out, nil
}

func buildInstrument(spec instrumentSpec) (instrument.Instrument, error) {
	osc, err := buildOscillator(spec)
	if err != nil {
		return instrument.Instrument{}, err
	}
	env := buildEnvelope(spec.Envelope)
	return instrument.New(osc, env), nil
}

func buildOscillator(spec instrumentSpec) (oscillator.Oscillator, error) {
	switch spec.Oscillator {
	case "", "square":
		return oscillator.Square(), nil
	case "triangle":
		return oscillator.Triangle(), nil
	case "sine":
		return oscillator.Sine(), nil
	case "saw":
		return oscillator.Saw(), nil
	case "noise":
		return oscillator.Noise(), nil
	case "rectangular":
		duty := spec.Duty
		if duty <= 0 || duty >= 1 {
			return nil, fmt.Errorf("rectangular oscillator requires 0 < duty < 1, got %v", duty)
		}
		return oscillator.Rectangular(duty), nil
	default:
		return nil, fmt.Errorf("unknown oscillator %q", spec.Oscillator)
	}
}

func buildEnvelope(spec *envelopeSpec) envelope.Envelope {
	if spec == nil {
		return envelope.DefaultAR()
	}
	peak := spec.Peak
	if peak == 0 {
		peak = 1.0
	}
	attack := spec.Attack
	if attack == 0 {
		attack = envelope.DefaultAttackLength
	}
	release := spec.Release
	if release == 0 {
		release = envelope.DefaultAttackLength
	}
	return envelope.AR{Peak: peak, AttackLength: attack, ReleaseLengthS: release}
}
