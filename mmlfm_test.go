package mmlfm

import "testing"

func TestBuildVoiceCompilesMML(t *testing.T) {
	v, err := BuildVoice("T120 L4 CDEFGAB", nil)
	if err != nil {
		t.Fatalf("BuildVoice failed: %v", err)
	}
	if v.Len() != 7 {
		t.Fatalf("expected 7 notes, got %d", v.Len())
	}
}

func TestBuildVoiceReturnsInvalidMMLError(t *testing.T) {
	_, err := BuildVoice("Z", nil)
	if err == nil {
		t.Fatalf("expected an error for an unrecognised command")
	}
	if _, ok := err.(*InvalidMMLError); !ok {
		t.Fatalf("expected *InvalidMMLError, got %T", err)
	}
}

func TestCompileMaestroDropsEmptyVoices(t *testing.T) {
	m, err := CompileMaestro([]string{"T120 L4 C", ""}, nil)
	if err != nil {
		t.Fatalf("CompileMaestro failed: %v", err)
	}
	if len(m.Voices()) != 1 {
		t.Fatalf("expected 1 surviving voice, got %d", len(m.Voices()))
	}
}

func TestVenueQueueMusicAndPlay(t *testing.T) {
	v := NewVenue()
	if err := v.QueueMusic([]string{"T120 L4 C"}, nil); err != nil {
		t.Fatalf("QueueMusic failed: %v", err)
	}
	// The first tick renders t=0, where the default envelope's attack
	// ramp is still at 0; the second tick is already inside the attack.
	v.GetSample(0, 0, 1.0/44100)
	if got := v.GetSample(0, 0, 1.0/44100); got == 0 {
		t.Fatalf("expected a non-zero sample from a freshly queued voice")
	}
}

func TestVenueQueueMusicRejectsInvalidMML(t *testing.T) {
	v := NewVenue()
	err := v.QueueMusic([]string{"Z"}, nil)
	if err == nil {
		t.Fatalf("expected an error for invalid MML")
	}
}

func TestVenueToggleLoop(t *testing.T) {
	v := NewVenue()
	if v.Looping() {
		t.Fatalf("expected a fresh Venue to not be looping")
	}
	v.ToggleLoop()
	if !v.Looping() {
		t.Fatalf("expected ToggleLoop to flip the loop flag")
	}
}
