package instrument

import (
	"testing"

	"github.com/quietwire/mmlfm/internal/envelope"
	"github.com/quietwire/mmlfm/internal/oscillator"
)

func TestNoteMultipliesEnvelopeAndOscillator(t *testing.T) {
	inst := New(
		oscillator.Func(func(freq, t float64) float64 { return 1 }),
		envelope.AR{Peak: 0.5, AttackLength: 0, ReleaseLengthS: 1},
	)
	if got := inst.Note(440, 0, envelope.NoRelease); got != 0.5 {
		t.Fatalf("Note() = %v, want 0.5", got)
	}
}

func TestReleaseLengthDelegates(t *testing.T) {
	inst := New(oscillator.Sine(), envelope.AR{ReleaseLengthS: 0.25})
	if got := inst.ReleaseLength(); got != 0.25 {
		t.Fatalf("ReleaseLength() = %v, want 0.25", got)
	}
}

func TestDefaultIsSquareWithDefaultAR(t *testing.T) {
	inst := Default()
	if inst.Oscillator.Sample(100, 0) != oscillator.Square().Sample(100, 0) {
		t.Fatalf("Default() oscillator is not Square")
	}
	if inst.ReleaseLength() != envelope.DefaultAttackLength {
		t.Fatalf("Default() release length = %v, want %v", inst.ReleaseLength(), envelope.DefaultAttackLength)
	}
}
