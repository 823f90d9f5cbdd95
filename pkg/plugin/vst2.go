package plugin

import (
	"fmt"
	"unsafe"

	vst2sdk "github.com/pipelined/vst2"

	"github.com/tcwalther/mrswatson/pkg/audio"
	"github.com/tcwalther/mrswatson/pkg/debug"
	"github.com/tcwalther/mrswatson/pkg/midi"
)

// VST2 dispatcher opcodes and constants used by the host. Only the handful
// the host needs are defined here; everything else goes through the loader
// library.
const (
	effProcessEvents   = 25
	effGetPlugCategory = 35
	plugCategSynth     = 2
	kVstMidiType       = 1
	maxEventsPerBlock  = 256
)

// vstMidiEvent mirrors the VstMidiEvent struct of the VST2 ABI.
type vstMidiEvent struct {
	kind            int32
	byteSize        int32
	deltaFrames     int32
	flags           int32
	noteLength      int32
	noteOffset      int32
	midiData        [4]byte
	detune          int8
	noteOffVelocity uint8
	reserved1       uint8
	reserved2       uint8
}

// vstEvents mirrors the VstEvents struct of the VST2 ABI, sized for the
// host's per-block event cap.
type vstEvents struct {
	numEvents int32
	reserved  uintptr
	events    [maxEventsPerBlock]*vstMidiEvent
}

// vst2Plugin hosts a plugin loaded from a VST2 dynamic library.
type vst2Plugin struct {
	name    string
	path    string
	subtype Subtype

	lib  *vst2sdk.Library
	plug *vst2sdk.Plugin

	// Scratch for the float32 <-> float64 conversion the loader requires.
	in  [][]float64
	out [][]float64

	midiEvents  *vstEvents
	midiStorage [maxEventsPerBlock]vstMidiEvent
}

func newVST2Plugin(name, path string) *vst2Plugin {
	return &vst2Plugin{name: name, path: path, subtype: SubtypeUnknown}
}

func (p *vst2Plugin) Name() string     { return p.name }
func (p *vst2Plugin) Type() Type       { return TypeVST2 }
func (p *vst2Plugin) Subtype() Subtype { return p.subtype }

// Open loads the dynamic library and instantiates the plugin.
func (p *vst2Plugin) Open() error {
	lib, err := vst2sdk.Open(p.path)
	if err != nil {
		return fmt.Errorf("loading plugin library '%s': %w", p.path, err)
	}
	plug, err := lib.Open()
	if err != nil {
		lib.Close()
		return fmt.Errorf("instantiating plugin '%s': %w", p.name, err)
	}
	p.lib = lib
	p.plug = plug

	if p.plug.Dispatch(vst2sdk.PluginOpcode(effGetPlugCategory), 0, 0, nil, 0) == plugCategSynth {
		p.subtype = SubtypeInstrument
	} else {
		p.subtype = SubtypeEffect
	}
	debug.Debug("Loaded plugin '%s' from '%s' (%s)", p.name, p.path, p.subtype)
	return nil
}

// Initialize hands the audio settings to the plugin and prepares the
// conversion scratch buffers.
func (p *vst2Plugin) Initialize(settings *audio.Settings) error {
	if p.plug == nil {
		return fmt.Errorf("plugin '%s' is not open", p.name)
	}
	p.plug.SetSampleRate(int(settings.SampleRate()))
	p.plug.SetBufferSize(settings.Blocksize())
	p.plug.Resume()

	numChannels := settings.NumChannels()
	blocksize := settings.Blocksize()
	p.in = make([][]float64, numChannels)
	p.out = make([][]float64, numChannels)
	for ch := 0; ch < numChannels; ch++ {
		p.in[ch] = make([]float64, blocksize)
		p.out[ch] = make([]float64, blocksize)
	}

	p.midiEvents = &vstEvents{}
	for i := range p.midiStorage {
		p.midiEvents.events[i] = &p.midiStorage[i]
	}
	return nil
}

func (p *vst2Plugin) ProcessAudio(in, out *audio.Buffer) {
	for ch := range in.Data {
		src := in.Data[ch]
		dst := p.in[ch]
		for i := range src {
			dst[i] = float64(src[i])
		}
	}

	processed := p.plug.Process(p.in)

	for ch := range out.Data {
		if ch >= len(processed) {
			break
		}
		src := processed[ch]
		dst := out.Data[ch]
		for i := range dst {
			if i < len(src) {
				dst[i] = float32(src[i])
			} else {
				dst[i] = 0
			}
		}
	}
}

// ProcessMidiEvents packs the block's events into the VST2 event structure
// and dispatches them to the plugin.
func (p *vst2Plugin) ProcessMidiEvents(events []midi.Event) {
	if len(events) == 0 {
		return
	}
	if len(events) > maxEventsPerBlock {
		debug.Warn("Dropping %d MIDI events beyond the per-block limit of %d",
			len(events)-maxEventsPerBlock, maxEventsPerBlock)
		events = events[:maxEventsPerBlock]
	}
	for i, event := range events {
		packed := &p.midiStorage[i]
		packed.kind = kVstMidiType
		packed.byteSize = int32(unsafe.Sizeof(*packed))
		packed.deltaFrames = event.DeltaFrames
		packed.midiData[0] = event.Status
		packed.midiData[1] = event.Data1
		packed.midiData[2] = event.Data2
		packed.midiData[3] = 0
	}
	p.midiEvents.numEvents = int32(len(events))
	p.plug.Dispatch(vst2sdk.PluginOpcode(effProcessEvents), 0, 0, unsafe.Pointer(p.midiEvents), 0)
}

func (p *vst2Plugin) DisplayInfo() {
	debug.Info("Plugin '%s' (VST2 %s) loaded from '%s'", p.name, p.subtype, p.path)
}

// Close suspends and releases the plugin, then unloads its library.
func (p *vst2Plugin) Close() error {
	if p.plug != nil {
		p.plug.Suspend()
		p.plug.Close()
		p.plug = nil
	}
	if p.lib != nil {
		p.lib.Close()
		p.lib = nil
	}
	return nil
}
