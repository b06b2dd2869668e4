// Package mml tokenizes and compiles Music Macro Language voice
// strings into note.Note sequences, per the letter-command
// grammar described alongside this package.
package mml

import (
	"unicode"

	"github.com/quietwire/mmlfm/internal/envelope"
	"github.com/quietwire/mmlfm/internal/instrument"
	"github.com/quietwire/mmlfm/internal/note"
	"github.com/quietwire/mmlfm/internal/oscillator"
	"github.com/quietwire/mmlfm/internal/pitch"
	"github.com/quietwire/mmlfm/internal/voice"
)

// DefaultInstrumentKey is the sentinel key every InstrumentMap must
// carry an entry for; BuildVoice reports Malconfigured without it. The
// parser does not start from this entry: every voice begins with
// instrument.Default() until an "I" command selects another.
const DefaultInstrumentKey = rune(0)

// InstrumentMap resolves the character keys the "IX" command looks up
// custom instruments by. Every InstrumentMap passed to BuildVoice must
// contain an entry at DefaultInstrumentKey.
type InstrumentMap map[rune]instrument.Instrument

// DefaultInstrumentMap returns a minimal, valid InstrumentMap whose
// only entry is the default square-wave instrument.
func DefaultInstrumentMap() InstrumentMap {
	return InstrumentMap{DefaultInstrumentKey: instrument.Default()}
}

var semitoneOffset = map[rune]int{
	'A': 9, 'B': 11, 'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7,
}

const (
	articulationLegato   = 1.0
	articulationNormal   = 7.0 / 8.0
	articulationStaccato = 3.0 / 4.0
)

var volumePresets = map[string]float64{
	"P":   0.375,
	"PP":  0.25,
	"PPP": 0.125,
	"MP":  0.5,
	"MF":  0.625,
	"F":   0.75,
	"FF":  0.875,
	"FFF": 1.0,
}

// parserState holds everything that evolves while compiling a voice
// string, per the component's described per-voice state.
type parserState struct {
	octave       int
	beatNote     int
	tempo        int
	articulation float64
	noteLengthS  float64
	volume       float64
	instrument   instrument.Instrument
	time         float64
}

func newState() *parserState {
	s := &parserState{
		octave:       4,
		beatNote:     4,
		tempo:        120,
		articulation: articulationNormal,
		volume:       0.5,
		instrument:   instrument.Default(),
	}
	s.recomputeNoteLength()
	return s
}

func (s *parserState) recomputeNoteLength() {
	s.noteLengthS = 240.0 / (float64(s.beatNote) * float64(s.tempo))
}

// Parser compiles MML voice strings into voice.Voice values.
type Parser struct{}

// NewParser returns a Parser. Parser is stateless; the same value may
// compile any number of voice strings.
func NewParser() *Parser { return &Parser{} }

// BuildVoice compiles a single MML voice string into a Voice. A nil
// table uses the engine's built-in 108-entry pitch table; a nil
// instruments map uses DefaultInstrumentMap. BuildVoice returns an
// *Error (see errors.go) on the first invalid command; parsing does
// not recover from errors.
func (p *Parser) BuildVoice(s string, instruments InstrumentMap, table []float64) (*voice.Voice, error) {
	if table == nil {
		table = pitch.Build()
	}
	if !pitch.Valid(table) {
		return nil, newError(Malconfigured, -1, "pitch table has %d entries, want %d", len(table), pitch.TableSize)
	}
	if instruments == nil {
		instruments = DefaultInstrumentMap()
	}
	if _, ok := instruments[DefaultInstrumentKey]; !ok {
		return nil, newError(Malconfigured, -1, "instrument map has no default entry")
	}

	c := &compiler{src: []rune(s), table: table, instruments: instruments, st: newState()}
	notes, err := c.run()
	if err != nil {
		return nil, err
	}
	return voice.New(notes), nil
}

type compiler struct {
	src         []rune
	pos         int
	table       []float64
	instruments InstrumentMap
	st          *parserState
	notes       []note.Note
}

func (c *compiler) run() ([]note.Note, error) {
	for {
		c.skipSpace()
		if c.atEnd() {
			return c.notes, nil
		}
		if err := c.command(); err != nil {
			return nil, err
		}
	}
}

func (c *compiler) atEnd() bool { return c.pos >= len(c.src) }

func (c *compiler) skipSpace() {
	for !c.atEnd() && unicode.IsSpace(c.src[c.pos]) {
		c.pos++
	}
}

func (c *compiler) peek() rune {
	if c.atEnd() {
		return 0
	}
	return c.src[c.pos]
}

func upper(r rune) rune { return unicode.ToUpper(r) }

// readUint greedily consumes decimal digits starting at the current
// (already whitespace-skipped) position. ok is false if there were no
// digits to consume.
func (c *compiler) readUint() (value int, ok bool) {
	start := c.pos
	for !c.atEnd() && unicode.IsDigit(c.src[c.pos]) {
		value = value*10 + int(c.src[c.pos]-'0')
		c.pos++
	}
	return value, c.pos > start
}

// command dispatches on the current character, per the grammar's
// top-level command set.
func (c *compiler) command() error {
	startPos := c.pos
	ch := upper(c.src[c.pos])
	switch {
	case ch == 'O':
		c.pos++
		return c.cmdOctaveSet(startPos)
	case ch == '<':
		c.pos++
		return c.cmdOctaveStep(-1, startPos)
	case ch == '>':
		c.pos++
		return c.cmdOctaveStep(1, startPos)
	case isNoteLetter(ch):
		c.pos++
		return c.cmdNote(ch, startPos)
	case ch == 'N':
		c.pos++
		return c.cmdRawNote(startPos)
	case ch == 'P' || ch == 'R':
		c.pos++
		return c.cmdRest()
	case ch == 'M':
		c.pos++
		return c.cmdLegacyOrArticulation(startPos)
	case ch == 'L':
		c.pos++
		return c.cmdBeatNote(startPos)
	case ch == 'T':
		c.pos++
		return c.cmdTempo(startPos)
	case ch == 'V':
		c.pos++
		return c.cmdVolume(startPos)
	case ch == 'I':
		c.pos++
		return c.cmdInstrument(startPos)
	default:
		return newError(UnknownCommand, startPos, "unrecognised command character %q", c.src[startPos])
	}
}

func isNoteLetter(ch rune) bool {
	_, ok := semitoneOffset[ch]
	return ok
}

func (c *compiler) cmdOctaveSet(pos int) error {
	c.skipSpace()
	n, ok := c.readUint()
	if !ok {
		return newError(MissingArgument, pos, "O requires an octave number")
	}
	if n < 0 || n > 8 {
		return newError(OutOfRange, pos, "octave %d out of range 0..8", n)
	}
	c.st.octave = n
	return nil
}

func (c *compiler) cmdOctaveStep(delta int, pos int) error {
	next := c.st.octave + delta
	if next < 0 || next > 8 {
		return newError(OutOfRange, pos, "octave step crosses table boundary")
	}
	c.st.octave = next
	return nil
}

// cmdNote handles A-G note letters including their trailing modifier
// sequence.
func (c *compiler) cmdNote(letter rune, pos int) error {
	pitchIndex := c.st.octave*pitch.SemitonesPerOctave + semitoneOffset[letter]

	tempLength := c.st.noteLengthS
	tempArticulation := c.st.articulation
	tempVolume := c.st.volume
	nextDot := tempLength / 2
	chord := false

	for {
		c.skipSpace()
		if c.atEnd() {
			break
		}
		mod := c.src[c.pos]
		switch {
		case mod == '+' || mod == '#':
			pitchIndex++
			if pitchIndex >= len(c.table) {
				return newError(PitchBoundary, c.pos, "sharp crosses top of pitch table")
			}
			c.pos++
		case mod == '-':
			pitchIndex--
			if pitchIndex < 0 {
				return newError(PitchBoundary, c.pos, "flat crosses bottom of pitch table")
			}
			c.pos++
		case unicode.IsDigit(mod) && mod != '0':
			lenPos := c.pos
			l, _ := c.readUint()
			if l < 1 || l > 64 {
				return newError(OutOfRange, lenPos, "note length %d out of range 1..64", l)
			}
			tempLength = 240.0 / (float64(l) * float64(c.st.tempo))
			nextDot = tempLength / 2
		case mod == '.':
			tempLength += nextDot
			nextDot /= 2
			c.pos++
		case mod == '_':
			tempArticulation = articulationLegato
			c.pos++
		case mod == '\'':
			tempArticulation = articulationStaccato
			c.pos++
		case mod == '^':
			tempVolume = min(tempVolume+0.125, 1.0)
			c.pos++
		case mod == ',':
			chord = true
			c.pos++
			goto doneMods
		default:
			goto doneMods
		}
	}
doneMods:

	freq := c.table[pitchIndex]
	c.notes = append(c.notes, note.New(c.st.instrument, freq, c.st.time, tempLength*tempArticulation, tempVolume))
	if !chord {
		c.st.time += tempLength
	}
	return nil
}

func (c *compiler) cmdRawNote(pos int) error {
	c.skipSpace()
	argPos := c.pos
	n, ok := c.readUint()
	if !ok {
		return newError(MissingArgument, pos, "N requires a pitch index")
	}
	if n > 108 {
		return newError(OutOfRange, argPos, "raw pitch %d out of range 0..108", n)
	}
	if n > 0 {
		freq := c.table[n-1]
		c.notes = append(c.notes, note.New(c.st.instrument, freq, c.st.time, c.st.noteLengthS*c.st.articulation, c.st.volume))
	}
	c.st.time += c.st.noteLengthS
	return nil
}

func (c *compiler) cmdRest() error {
	c.skipSpace()
	length := c.st.noteLengthS
	nextDot := length / 2
	if unicode.IsDigit(c.peek()) {
		lenPos := c.pos
		l, _ := c.readUint()
		if l < 1 || l > 64 {
			return newError(OutOfRange, lenPos, "rest length %d out of range 1..64", l)
		}
		length = 240.0 / (float64(l) * float64(c.st.tempo))
		nextDot = length / 2
	}
	for {
		c.skipSpace()
		if c.peek() != '.' {
			break
		}
		c.pos++
		length += nextDot
		nextDot /= 2
	}
	c.st.time += length
	return nil
}

func (c *compiler) cmdLegacyOrArticulation(pos int) error {
	c.skipSpace()
	if c.atEnd() {
		return newError(MissingArgument, pos, "M requires a suffix letter")
	}
	switch upper(c.src[c.pos]) {
	case 'F', 'B':
		c.pos++
		return nil
	case 'L':
		c.st.articulation = articulationLegato
		c.pos++
		return nil
	case 'N':
		c.st.articulation = articulationNormal
		c.pos++
		return nil
	case 'S':
		c.st.articulation = articulationStaccato
		c.pos++
		return nil
	default:
		return newError(UnknownCommand, pos, "unrecognised M suffix %q", c.src[c.pos])
	}
}

func (c *compiler) cmdBeatNote(pos int) error {
	c.skipSpace()
	n, ok := c.readUint()
	if !ok {
		return newError(MissingArgument, pos, "L requires a beat-note denominator")
	}
	if n < 1 || n > 64 {
		return newError(OutOfRange, pos, "beat note %d out of range 1..64", n)
	}
	c.st.beatNote = n
	c.st.recomputeNoteLength()
	return nil
}

func (c *compiler) cmdTempo(pos int) error {
	c.skipSpace()
	n, ok := c.readUint()
	if !ok {
		return newError(MissingArgument, pos, "T requires a tempo")
	}
	if n < 16 || n > 256 {
		return newError(OutOfRange, pos, "tempo %d out of range 16..256", n)
	}
	c.st.tempo = n
	c.st.recomputeNoteLength()
	return nil
}

func (c *compiler) cmdVolume(pos int) error {
	c.skipSpace()
	if unicode.IsDigit(c.peek()) {
		n, _ := c.readUint()
		if n < 0 || n > 100 {
			return newError(OutOfRange, pos, "volume %d out of range 0..100", n)
		}
		c.st.volume = float64(n) / 100.0
		return nil
	}

	if c.atEnd() {
		return newError(MissingArgument, pos, "V requires a numeric volume or a P/F preset")
	}
	first := upper(c.src[c.pos])
	if first != 'P' && first != 'F' && first != 'M' {
		return newError(MissingArgument, pos, "V requires a numeric volume or a P/F preset, got %q", c.src[c.pos])
	}
	c.pos++

	letters := []rune{first}
	if first == 'M' {
		// M only ever pairs with a single following P or F ("MP", "MF");
		// there is no bare "M" preset.
		if !c.atEnd() {
			next := upper(c.src[c.pos])
			if next == 'P' || next == 'F' {
				letters = append(letters, next)
				c.pos++
			}
		}
	} else {
		// P/F extend only by repeating the same letter: P, PP, PPP (and
		// likewise for F), never by mixing letters.
		for !c.atEnd() && len(letters) < 3 && upper(c.src[c.pos]) == first {
			letters = append(letters, first)
			c.pos++
		}
	}
	token := string(letters)
	v, ok := volumePresets[token]
	if !ok {
		return newError(MissingArgument, pos, "V requires a numeric volume or a P/F preset, got %q", token)
	}
	c.st.volume = v
	if c.peek() == ';' {
		c.pos++
	}
	return nil
}

func (c *compiler) cmdInstrument(pos int) error {
	c.skipSpace()
	if c.atEnd() {
		return newError(MissingArgument, pos, "I requires a suffix")
	}
	switch upper(c.src[c.pos]) {
	case 'Q':
		c.pos++
		c.st.instrument = instrument.New(oscillator.Square(), envelope.DefaultAR())
		return nil
	case 'T':
		c.pos++
		c.st.instrument = instrument.New(oscillator.Triangle(), envelope.DefaultAR())
		return nil
	case 'S':
		c.pos++
		c.st.instrument = instrument.New(oscillator.Sine(), envelope.DefaultAR())
		return nil
	case 'W':
		c.pos++
		c.st.instrument = instrument.New(oscillator.Saw(), envelope.DefaultAR())
		return nil
	case 'N':
		c.pos++
		c.st.instrument = instrument.New(oscillator.Noise(), envelope.DefaultAR())
		return nil
	case 'P':
		c.pos++
		c.skipSpace()
		dutyPos := c.pos
		nn, ok := c.readUint()
		if !ok {
			return newError(MissingArgument, pos, "IP requires a duty cycle")
		}
		if nn < 1 || nn > 99 {
			return newError(OutOfRange, dutyPos, "duty %d out of range 1..99", nn)
		}
		c.st.instrument = instrument.New(oscillator.Rectangular(float64(nn)/100.0), envelope.DefaultAR())
		return nil
	case 'X':
		c.pos++
		c.skipSpace()
		if c.atEnd() {
			return newError(MissingArgument, pos, "IX requires an instrument key")
		}
		key := c.src[c.pos]
		c.pos++
		inst, ok := c.instruments[key]
		if !ok {
			return newError(UnknownInstrument, pos, "no custom instrument registered for %q", key)
		}
		c.st.instrument = inst
		return nil
	default:
		return newError(UnknownInstrument, pos, "unsupported I suffix %q", c.src[c.pos])
	}
}
