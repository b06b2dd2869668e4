package note

import (
	"testing"

	"github.com/quietwire/mmlfm/internal/envelope"
	"github.com/quietwire/mmlfm/internal/instrument"
	"github.com/quietwire/mmlfm/internal/oscillator"
)

func flatInstrument(release float64) instrument.Instrument {
	return instrument.New(
		oscillator.Func(func(freq, t float64) float64 { return 1 }),
		envelope.AR{Peak: 1, AttackLength: 0, ReleaseLengthS: release},
	)
}

func TestBeforeAndAfter(t *testing.T) {
	n := New(flatInstrument(0.1), 440, 1.0, 0.5, 1.0)
	if !n.Before(0.5) {
		t.Fatalf("expected Before(0.5) to hold before start")
	}
	if n.Before(1.0) {
		t.Fatalf("expected Before(1.0) to be false at start")
	}
	if n.After(1.0) {
		t.Fatalf("expected not After at start")
	}
	if !n.After(1.0 + 0.5 + 0.1 + 1e-6) {
		t.Fatalf("expected After once duration+release have elapsed")
	}
}

func TestActiveWindow(t *testing.T) {
	n := New(flatInstrument(0.1), 440, 1.0, 0.5, 1.0)
	if n.Active(0.9) {
		t.Fatalf("expected inactive before start")
	}
	if !n.Active(1.2) {
		t.Fatalf("expected active during sustain")
	}
	if !n.Active(1.55) {
		t.Fatalf("expected active during release tail")
	}
	if n.Active(1.7) {
		t.Fatalf("expected inactive after release tail ends")
	}
}

func TestPlayUsesVolume(t *testing.T) {
	n := New(flatInstrument(0), 440, 0, 1.0, 0.25)
	if got := n.Play(0.5); got != 0.25 {
		t.Fatalf("Play(0.5) = %v, want 0.25", got)
	}
}

type spyEnvelope struct {
	gotRel *float64
}

func (s spyEnvelope) Sample(t, rel float64) float64 {
	*s.gotRel = rel
	return 1
}

func (s spyEnvelope) ReleaseLength() float64 { return 0 }

func TestPlayPassesReleaseAfterDuration(t *testing.T) {
	gotRel := -999.0
	inst := instrument.New(
		oscillator.Func(func(freq, t float64) float64 { return 1 }),
		spyEnvelope{gotRel: &gotRel},
	)
	n := New(inst, 440, 0, 1.0, 1.0)
	n.Play(1.5)
	if gotRel != 1.0 {
		t.Fatalf("expected release time 1.0 once elapsed exceeds duration, got %v", gotRel)
	}
}
