package venue

import (
	"testing"

	"github.com/quietwire/mmlfm/internal/envelope"
	"github.com/quietwire/mmlfm/internal/instrument"
	"github.com/quietwire/mmlfm/internal/maestro"
	"github.com/quietwire/mmlfm/internal/note"
	"github.com/quietwire/mmlfm/internal/oscillator"
	"github.com/quietwire/mmlfm/internal/voice"
)

func flatInstrument() instrument.Instrument {
	return instrument.New(
		oscillator.Func(func(freq, t float64) float64 { return 1 }),
		envelope.AR{Peak: 1, AttackLength: 0, ReleaseLengthS: 0},
	)
}

func onePieceOfLength(seconds float64) *maestro.Maestro {
	inst := flatInstrument()
	v := voice.New([]note.Note{note.New(inst, 100, 0, seconds, 1.0)})
	return maestro.New([]*voice.Voice{v})
}

func TestGetSampleOnEmptyVenueIsSilent(t *testing.T) {
	v := New()
	if got := v.GetSample(0, 0, 1.0/44100); got != 0 {
		t.Fatalf("GetSample on an empty Venue = %v, want 0", got)
	}
}

func TestGetSampleOnNonZeroChannelIsSilent(t *testing.T) {
	v := New()
	v.QueueMaestro(onePieceOfLength(1.0))
	if got := v.GetSample(1, 0, 1.0/44100); got != 0 {
		t.Fatalf("GetSample on channel 1 = %v, want 0", got)
	}
}

func TestGetSamplePlaysQueuedPiece(t *testing.T) {
	v := New()
	v.QueueMaestro(onePieceOfLength(1.0))
	delta := 1.0 / 44100
	first := v.GetSample(0, 0, delta)
	if first == 0 {
		t.Fatalf("expected non-zero sample from a playing piece")
	}
}

func TestClearQueueTakesOneTickToApply(t *testing.T) {
	v := New()
	v.QueueMaestro(onePieceOfLength(1.0))
	v.GetSample(0, 0, 1.0/44100)
	v.ClearQueue()
	v.GetSample(0, 0, 1.0/44100)
	if !v.isEmpty() {
		t.Fatalf("expected ClearQueue to have emptied the program")
	}
}

func TestCompletionCallbackFiresWhenProgramDrains(t *testing.T) {
	v := New()
	v.QueueMaestro(onePieceOfLength(0.0001))
	fired := false
	v.SetCompletionCallback(func() { fired = true })

	delta := 1.0 / 44100
	for i := 0; i < 100; i++ {
		v.GetSample(0, 0, delta)
		if fired {
			break
		}
	}
	if !fired {
		t.Fatalf("expected completion callback to fire once the program drained")
	}
}

func TestLoopingRestartsHeadInsteadOfPopping(t *testing.T) {
	v := New()
	v.QueueMaestro(onePieceOfLength(0.0001))
	v.ToggleLoop()
	if !v.Looping() {
		t.Fatalf("expected Looping() true after ToggleLoop")
	}

	delta := 1.0 / 44100
	for i := 0; i < 200; i++ {
		v.GetSample(0, 0, delta)
	}
	if v.isEmpty() {
		t.Fatalf("expected a looping piece to stay queued instead of draining")
	}
}

func TestReentrantCallbackCanRequeue(t *testing.T) {
	v := New()
	v.QueueMaestro(onePieceOfLength(0.0001))

	requeued := false
	v.SetCompletionCallback(func() {
		if !requeued {
			requeued = true
			v.QueueMaestro(onePieceOfLength(0.0001))
		}
	})

	delta := 1.0 / 44100
	for i := 0; i < 200; i++ {
		v.GetSample(0, 0, delta)
	}
	if !requeued {
		t.Fatalf("expected the completion callback to have fired and requeued")
	}
}
