package audio

import (
	"encoding/binary"
	"io"
	"math"
	"sync"

	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// streamReader turns repeated SampleFunc calls into the float32 PCM
// stream ebiten's audio player expects, following the teacher's own
// Read-from-a-SampleSource convention.
type streamReader struct {
	mu     sync.Mutex
	sample SampleFunc
	delta  float64
}

func newStreamReader(sample SampleFunc, sampleRate int) *streamReader {
	return &streamReader{sample: sample, delta: 1.0 / float64(sampleRate)}
}

func (r *streamReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	frames := len(p) / 4
	if frames == 0 {
		return 0, nil
	}
	for i := 0; i < frames; i++ {
		s := r.sample(r.delta)
		u := math.Float32bits(float32(s))
		binary.LittleEndian.PutUint32(p[i*4:], u)
	}
	return frames * 4, nil
}

func (r *streamReader) Close() error { return nil }

// EbitenBackend renders samples through
// github.com/hajimehoshi/ebiten/v2/audio, the same real-time output
// path the teacher repo uses.
type EbitenBackend struct {
	player *ebitaudio.Player
	reader io.ReadCloser
}

// NewEbitenBackend builds a backend that pulls mono float32 samples
// from sample at sampleRate. The context is shared across all
// EbitenBackend instances in the process, matching ebiten's own
// one-context-per-sample-rate model.
func NewEbitenBackend(sampleRate int, sample SampleFunc) (*EbitenBackend, error) {
	ctx, err := sharedContext(sampleRate)
	if err != nil {
		return nil, err
	}
	reader := newStreamReader(sample, sampleRate)
	pl, err := ctx.NewPlayerF32(monoToStereo(reader))
	if err != nil {
		return nil, err
	}
	return &EbitenBackend{player: pl, reader: reader}, nil
}

func (b *EbitenBackend) Play() error {
	b.player.Play()
	return nil
}

func (b *EbitenBackend) Stop() error {
	b.player.Pause()
	b.player.Close()
	return b.reader.Close()
}

var (
	contextOnce sync.Once
	context_    *ebitaudio.Context
	contextRate int
)

func sharedContext(sampleRate int) (*ebitaudio.Context, error) {
	contextOnce.Do(func() {
		contextRate = sampleRate
		context_ = ebitaudio.NewContext(sampleRate)
	})
	if contextRate != sampleRate {
		return nil, errSampleRateMismatch(contextRate, sampleRate)
	}
	return context_, nil
}

// monoToStereo duplicates the engine's mono stream to both channels,
// since ebiten's audio package is stereo-only.
type stereoDup struct {
	io.ReadCloser
}

func monoToStereo(r io.ReadCloser) io.ReadCloser {
	return &stereoDup{ReadCloser: r}
}

func (s *stereoDup) Read(p []byte) (int, error) {
	frames := len(p) / 8
	if frames == 0 {
		return 0, nil
	}
	mono := make([]byte, frames*4)
	n, err := s.ReadCloser.Read(mono)
	monoFrames := n / 4
	for i := 0; i < monoFrames; i++ {
		copy(p[i*8:i*8+4], mono[i*4:i*4+4])
		copy(p[i*8+4:i*8+8], mono[i*4:i*4+4])
	}
	return monoFrames * 8, err
}

type sampleRateMismatchError struct {
	have, want int
}

func (e *sampleRateMismatchError) Error() string {
	return "audio context already initialized at a different sample rate"
}

func errSampleRateMismatch(have, want int) error {
	return &sampleRateMismatchError{have: have, want: want}
}
