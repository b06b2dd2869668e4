package config

import (
	"strings"
	"testing"

	"github.com/quietwire/mmlfm/internal/mml"
)

const validDoc = `
default:
  oscillator: square
instruments:
  "a":
    oscillator: sine
  "b":
    oscillator: rectangular
    duty: 0.3
  "c":
    oscillator: triangle
    envelope:
      attack: 0.01
      release: 0.08
`

func TestLoadInstrumentMapBuildsDefaultAndCustomEntries(t *testing.T) {
	m, err := LoadInstrumentMap(strings.NewReader(validDoc))
	if err != nil {
		t.Fatalf("LoadInstrumentMap failed: %v", err)
	}
	if _, ok := m[mml.DefaultInstrumentKey]; !ok {
		t.Fatalf("expected a default instrument entry")
	}
	for _, key := range []rune{'a', 'b', 'c'} {
		if _, ok := m[key]; !ok {
			t.Fatalf("expected instrument entry for %q", string(key))
		}
	}
}

func TestLoadInstrumentMapRejectsMultiCharKeys(t *testing.T) {
	doc := `
default:
  oscillator: square
instruments:
  "ab":
    oscillator: sine
`
	_, err := LoadInstrumentMap(strings.NewReader(doc))
	if err == nil {
		t.Fatalf("expected an error for a multi-character instrument key")
	}
}

func TestLoadInstrumentMapRejectsBadDutyCycle(t *testing.T) {
	doc := `
default:
  oscillator: square
instruments:
  "a":
    oscillator: rectangular
    duty: 1.5
`
	_, err := LoadInstrumentMap(strings.NewReader(doc))
	if err == nil {
		t.Fatalf("expected an error for an out-of-range duty cycle")
	}
}

func TestLoadInstrumentMapRejectsUnknownOscillator(t *testing.T) {
	doc := `
default:
  oscillator: bogus
`
	_, err := LoadInstrumentMap(strings.NewReader(doc))
	if err == nil {
		t.Fatalf("expected an error for an unknown oscillator name")
	}
}

func TestLoadInstrumentMapRejectsMalformedYAML(t *testing.T) {
	_, err := LoadInstrumentMap(strings.NewReader("not: [valid"))
	if err == nil {
		t.Fatalf("expected a YAML parse error")
	}
}
