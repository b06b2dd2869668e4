package audio

import (
	"github.com/gordonklaus/portaudio"
)

// PortAudioBackend renders samples through
// github.com/gordonklaus/portaudio, for hosts that don't already
// depend on ebiten. Only one PortAudioBackend may be open at a time per
// process, matching PortAudio's own global-stream model.
type PortAudioBackend struct {
	stream *portaudio.Stream
	sample SampleFunc
	delta  float64
}

// NewPortAudioBackend opens the default output device at sampleRate
// with a mono float32 stream pulling from sample. portaudio.Initialize
// must have been called by the host before this returns successfully;
// callers are responsible for a matching portaudio.Terminate.
func NewPortAudioBackend(sampleRate int, sample SampleFunc) (*PortAudioBackend, error) {
	b := &PortAudioBackend{
		sample: sample,
		delta:  1.0 / float64(sampleRate),
	}
	stream, err := portaudio.OpenDefaultStream(0, 1, float64(sampleRate), 0, b.fill)
	if err != nil {
		return nil, err
	}
	b.stream = stream
	return b, nil
}

func (b *PortAudioBackend) fill(out []float32) {
	for i := range out {
		out[i] = float32(b.sample(b.delta))
	}
}

func (b *PortAudioBackend) Play() error {
	return b.stream.Start()
}

func (b *PortAudioBackend) Stop() error {
	if err := b.stream.Stop(); err != nil {
		return err
	}
	return b.stream.Close()
}
