package plugin

import (
	"math"

	"github.com/tcwalther/mrswatson/pkg/audio"
	"github.com/tcwalther/mrswatson/pkg/debug"
	"github.com/tcwalther/mrswatson/pkg/midi"
)

const (
	synthNumVoices   = 16
	synthAmplitude   = 0.5
	synthReleaseTime = 0.005 // seconds
)

// synthVoice is a single sine voice with a short linear release ramp to
// avoid clicks on note-off.
type synthVoice struct {
	note      uint8
	phase     float64
	increment float64
	amplitude float64
	releasing bool
	release   float64
	active    bool
	age       int64
}

func (v *synthVoice) trigger(note, velocity uint8, sampleRate float64) {
	frequency := 440.0 * math.Pow(2.0, (float64(note)-69.0)/12.0)
	v.note = note
	v.phase = 0
	v.increment = 2 * math.Pi * frequency / sampleRate
	v.amplitude = synthAmplitude * float64(velocity) / 127.0
	v.releasing = false
	v.release = 1.0
	v.active = true
	v.age = 0
}

func (v *synthVoice) next(releaseStep float64) float32 {
	if !v.active {
		return 0
	}
	sample := math.Sin(v.phase) * v.amplitude * v.release
	v.phase += v.increment
	if v.phase >= 2*math.Pi {
		v.phase -= 2 * math.Pi
	}
	if v.releasing {
		v.release -= releaseStep
		if v.release <= 0 {
			v.active = false
		}
	}
	v.age++
	return float32(sample)
}

// synthPlugin is the internal test instrument: a polyphonic sine synth
// driven entirely by the MIDI events of each block.
type synthPlugin struct {
	name        string
	sampleRate  float64
	releaseStep float64
	voices      [synthNumVoices]synthVoice
	pending     []midi.Event
}

func newSynthPlugin(name string) *synthPlugin {
	return &synthPlugin{name: name}
}

func (p *synthPlugin) Name() string     { return p.name }
func (p *synthPlugin) Type() Type       { return TypeInternal }
func (p *synthPlugin) Subtype() Subtype { return SubtypeInstrument }

func (p *synthPlugin) Open() error { return nil }

func (p *synthPlugin) Initialize(settings *audio.Settings) error {
	p.sampleRate = settings.SampleRate()
	p.releaseStep = 1.0 / (synthReleaseTime * p.sampleRate)
	p.pending = make([]midi.Event, 0, 64)
	return nil
}

// ProcessMidiEvents holds the block's events until the next audio pass,
// where they are applied at their delta frame positions.
func (p *synthPlugin) ProcessMidiEvents(events []midi.Event) {
	p.pending = p.pending[:0]
	p.pending = append(p.pending, events...)
}

func (p *synthPlugin) ProcessAudio(in, out *audio.Buffer) {
	blocksize := out.Blocksize()
	eventIdx := 0

	for frame := 0; frame < blocksize; frame++ {
		for eventIdx < len(p.pending) && int(p.pending[eventIdx].DeltaFrames) <= frame {
			p.handleEvent(p.pending[eventIdx])
			eventIdx++
		}

		var mixed float32
		for i := range p.voices {
			mixed += p.voices[i].next(p.releaseStep)
		}
		for ch := range out.Data {
			out.Data[ch][frame] = mixed
		}
	}
	p.pending = p.pending[:0]
}

func (p *synthPlugin) handleEvent(event midi.Event) {
	switch {
	case event.IsNoteOn():
		p.allocateVoice().trigger(event.Data1, event.Data2, p.sampleRate)
	case event.IsNoteOff():
		for i := range p.voices {
			voice := &p.voices[i]
			if voice.active && !voice.releasing && voice.note == event.Data1 {
				voice.releasing = true
				break
			}
		}
	}
}

// allocateVoice returns a free voice, stealing the oldest one when all are
// busy.
func (p *synthPlugin) allocateVoice() *synthVoice {
	var oldest *synthVoice
	for i := range p.voices {
		voice := &p.voices[i]
		if !voice.active {
			return voice
		}
		if oldest == nil || voice.age > oldest.age {
			oldest = voice
		}
	}
	return oldest
}

func (p *synthPlugin) DisplayInfo() {
	debug.Info("Plugin '%s' (internal instrument): %d-voice sine synthesizer",
		p.name, synthNumVoices)
}

func (p *synthPlugin) Close() error { return nil }
