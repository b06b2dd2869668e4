// Package venue implements the playback scheduler: a FIFO queue of
// pieces, a monotonic internal clock driven by the consumer, and a
// completion callback invoked on the audio thread.
//
// Venue is designed for exactly the producer/consumer split spec.md §5
// describes: a producer (application) goroutine mutates the queue and
// flags; a consumer (the audio callback) drains one sample per call to
// GetSample. stopRequested and looping are atomic.Bool so a write from
// the producer is guaranteed visible to the consumer's next tick
// without a lock; program is guarded by a mutex because the consumer
// must never observe a partially appended Maestro or pop from an empty
// queue; internalTime is touched only by the consumer and is not
// synchronized at all.
package venue

import (
	"sync"
	"sync/atomic"

	"github.com/quietwire/mmlfm/internal/maestro"
)

// noInternalTime marks "(re)start the clock at 0 on the next tick".
const noInternalTime = -1

// Venue is the playback scheduler. The zero value is not usable; build
// one with New. A Venue is safe for concurrent use by one producer and
// one consumer as described in the package doc.
type Venue struct {
	mu      sync.Mutex
	program []*maestro.Maestro

	looping       atomic.Bool
	stopRequested atomic.Bool
	internalTime  float64
	callback      atomic.Pointer[func()]
}

// New returns an empty, non-looping Venue.
func New() *Venue {
	v := &Venue{}
	v.internalTime = noInternalTime
	return v
}

// QueueMaestro appends a compiled piece to the FIFO program.
func (v *Venue) QueueMaestro(m *maestro.Maestro) {
	v.mu.Lock()
	v.program = append(v.program, m)
	v.mu.Unlock()
}

// ClearQueue requests that the program be cleared. The request is
// honoured on the Venue's next GetSample tick, per spec.md §5's
// documented at-most-one-tick latency; it does not synchronously empty
// the queue.
func (v *Venue) ClearQueue() {
	v.stopRequested.Store(true)
}

// ToggleLoop flips whether the head piece restarts on completion
// instead of being dequeued.
func (v *Venue) ToggleLoop() {
	v.looping.Store(!v.looping.Load())
}

// Looping reports the current loop flag.
func (v *Venue) Looping() bool { return v.looping.Load() }

// SetCompletionCallback installs fn to be invoked on the consumer
// (audio) thread whenever the program is flushed or drained to empty.
// The callback must be reentrant: it may itself call QueueMaestro or
// ToggleLoop.
func (v *Venue) SetCompletionCallback(fn func()) {
	if fn == nil {
		v.callback.Store(nil)
		return
	}
	f := fn
	v.callback.Store(&f)
}

func (v *Venue) invokeCallback() {
	if p := v.callback.Load(); p != nil {
		(*p)()
	}
}

// popHead removes and returns the head of the program, or nil if empty.
func (v *Venue) popHead() *maestro.Maestro {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.program) == 0 {
		return nil
	}
	head := v.program[0]
	v.program = v.program[1:]
	return head
}

// head returns the current head of the program without removing it,
// or nil if empty.
func (v *Venue) head() *maestro.Maestro {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.program) == 0 {
		return nil
	}
	return v.program[0]
}

func (v *Venue) clearProgram() {
	v.mu.Lock()
	v.program = nil
	v.mu.Unlock()
}

func (v *Venue) isEmpty() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.program) == 0
}

// GetSample renders one sample of the engine's current output. channel
// must be 0 to render; any other channel returns silence. globalTime is
// accepted for API compatibility with a host audio callback but
// ignored: the Venue maintains its own clock, advanced by delta each
// call. GetSample must be called only from the consumer thread, with a
// non-negative delta so the clock never runs backwards, and never
// raises — every quiescent
// condition returns 0.
func (v *Venue) GetSample(channel int, globalTime float64, delta float64) float64 {
	if channel != 0 {
		return 0
	}

	if v.stopRequested.Load() {
		v.clearProgram()
		v.internalTime = noInternalTime
		v.stopRequested.Store(false)
		v.invokeCallback()
	}

	if v.isEmpty() {
		return 0
	}

	if h := v.head(); h != nil && h.Finished() {
		if v.looping.Load() {
			h.Loop()
		} else {
			v.popHead()
		}
		v.internalTime = noInternalTime
	}

	if v.isEmpty() {
		v.invokeCallback()
	}

	if v.isEmpty() {
		return 0
	}

	if v.internalTime == noInternalTime {
		v.internalTime = 0
	} else {
		v.internalTime += delta
	}

	h := v.head()
	if h == nil {
		return 0
	}
	return h.Play(v.internalTime)
}
