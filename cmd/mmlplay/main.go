// Command mmlplay is a demo CLI around the mmlfm engine: it compiles
// one or more MML voice strings, either renders them to a WAV file or
// streams them through a real-time audio backend.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/pflag"
	"github.com/sqweek/dialog"

	"github.com/quietwire/mmlfm"
	"github.com/quietwire/mmlfm/internal/audio"
	"github.com/quietwire/mmlfm/internal/config"
	"github.com/quietwire/mmlfm/internal/wav"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime)

	var (
		inline      string
		instPath    string
		backendName string
		wavPath     string
		sampleRate  int
		maxSeconds  float64
		loop        bool
	)
	pflag.StringVarP(&inline, "mml", "m", "", "inline MML voice string (repeat with ';' to separate voices)")
	pflag.StringVarP(&instPath, "instruments", "i", "", "path to a YAML instrument map")
	pflag.StringVarP(&backendName, "backend", "b", "ebiten", "real-time backend: ebiten or portaudio")
	pflag.StringVarP(&wavPath, "wav", "w", "", "render to a WAV file instead of playing live")
	pflag.IntVarP(&sampleRate, "rate", "r", 44100, "sample rate in Hz")
	pflag.Float64Var(&maxSeconds, "max-seconds", 120, "render cap when writing a WAV file")
	pflag.BoolVarP(&loop, "loop", "l", false, "loop the piece")
	pflag.Parse()

	cwd, err := os.Getwd()
	if err != nil {
		logger.Fatalf("failed to get current working directory: %v", err)
	}

	voiceStrings, err := chooseVoices(cwd, inline, pflag.Args())
	if err != nil {
		if errors.Is(err, dialog.ErrCancelled) {
			logger.Printf("user cancelled the file dialog")
			os.Exit(1)
		}
		logger.Fatalf("failed to determine MML source: %v", err)
	}

	instruments := mmlfm.DefaultInstrumentMap()
	if instPath != "" {
		f, err := os.Open(instPath)
		if err != nil {
			logger.Fatalf("opening instrument map: %v", err)
		}
		instruments, err = config.LoadInstrumentMap(f)
		f.Close()
		if err != nil {
			logger.Fatalf("loading instrument map: %v", err)
		}
	}

	maestro, err := mmlfm.CompileMaestro(voiceStrings, instruments)
	if err != nil {
		logger.Fatalf("compile error: %v", err)
	}

	if os.Getenv("MMLFM_DEBUG") == "1" {
		spew.Dump(maestro)
	}

	venue := mmlfm.NewVenue()
	venue.QueueMaestro(maestro)
	if loop {
		venue.ToggleLoop()
	}

	sample := func(delta float64) float64 {
		return venue.GetSample(0, 0, delta)
	}

	if wavPath != "" {
		done := false
		venue.SetCompletionCallback(func() { done = true })
		samples := wav.RenderVenue(sample, sampleRate, maxSeconds, func() bool { return done })
		if err := os.WriteFile(wavPath, wav.Encode(samples, sampleRate), 0o644); err != nil {
			logger.Fatalf("writing WAV file: %v", err)
		}
		logger.Printf("wrote %s (%d samples)", wavPath, len(samples))
		return
	}

	backend, err := openBackend(backendName, sampleRate, sample)
	if err != nil {
		logger.Fatalf("opening audio backend: %v", err)
	}
	if err := backend.Play(); err != nil {
		logger.Fatalf("starting playback: %v", err)
	}

	stopped := make(chan struct{})
	venue.SetCompletionCallback(func() {
		if !loop {
			close(stopped)
		}
	})
	<-stopped
	if err := backend.Stop(); err != nil {
		logger.Printf("stopping playback: %v", err)
	}
	time.Sleep(50 * time.Millisecond)
}

func openBackend(name string, sampleRate int, sample audio.SampleFunc) (audio.Backend, error) {
	switch name {
	case "ebiten":
		return audio.NewEbitenBackend(sampleRate, sample)
	case "portaudio":
		return audio.NewPortAudioBackend(sampleRate, sample)
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}

// chooseVoices returns the MML voice strings to play, either from the
// --mml flag, the first positional file argument (any further ones are
// ignored), or an interactive file dialog when neither was given.
func chooseVoices(cwd, inline string, args []string) ([]string, error) {
	if inline != "" {
		return strings.Split(inline, ";"), nil
	}

	var path string
	if len(args) > 0 {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			return nil, fmt.Errorf("cannot get absolute path: %w", err)
		}
		path = abs
	} else {
		chosen, err := dialog.
			File().
			Title("Open MML source").
			Filter("MML source (*.mml)", "mml").
			SetStartDir(cwd).
			Load()
		if err != nil {
			return nil, err
		}
		if chosen == "" {
			return nil, dialog.ErrCancelled
		}
		path = chosen
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading MML source: %w", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	voices := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" || strings.HasPrefix(l, "/") {
			continue
		}
		voices = append(voices, l)
	}
	return voices, nil
}
