package plugin

import (
	"testing"

	"github.com/tcwalther/mrswatson/pkg/audio"
	"github.com/tcwalther/mrswatson/pkg/midi"
)

func peakLevel(buf *audio.Buffer) float32 {
	var peak float32
	for ch := range buf.Data {
		for _, sample := range buf.Data[ch] {
			if sample > peak {
				peak = sample
			}
			if -sample > peak {
				peak = -sample
			}
		}
	}
	return peak
}

func TestSynthIsSilentWithoutNotes(t *testing.T) {
	settings := newTestSettings(256)
	synth := newSynthPlugin("simplesynth")
	synth.Open()
	if err := synth.Initialize(settings); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	in := audio.NewBuffer(settings.NumChannels(), settings.Blocksize())
	out := audio.NewBuffer(settings.NumChannels(), settings.Blocksize())
	synth.ProcessAudio(in, out)

	if peak := peakLevel(out); peak != 0 {
		t.Errorf("Expected silence, got peak %f", peak)
	}
}

func TestSynthRespondsToNoteOn(t *testing.T) {
	settings := newTestSettings(256)
	synth := newSynthPlugin("simplesynth")
	synth.Open()
	synth.Initialize(settings)

	synth.ProcessMidiEvents([]midi.Event{
		{Status: 0x90, Data1: 69, Data2: 127, DeltaFrames: 0},
	})

	in := audio.NewBuffer(settings.NumChannels(), settings.Blocksize())
	out := audio.NewBuffer(settings.NumChannels(), settings.Blocksize())
	synth.ProcessAudio(in, out)

	if peak := peakLevel(out); peak == 0 {
		t.Error("Expected audio after note-on")
	}
}

func TestSynthHonorsDeltaFrames(t *testing.T) {
	settings := newTestSettings(256)
	synth := newSynthPlugin("simplesynth")
	synth.Open()
	synth.Initialize(settings)

	synth.ProcessMidiEvents([]midi.Event{
		{Status: 0x90, Data1: 69, Data2: 127, DeltaFrames: 128},
	})

	in := audio.NewBuffer(settings.NumChannels(), settings.Blocksize())
	out := audio.NewBuffer(settings.NumChannels(), settings.Blocksize())
	synth.ProcessAudio(in, out)

	for ch := range out.Data {
		for i := 0; i < 128; i++ {
			if out.Data[ch][i] != 0 {
				t.Fatalf("Expected silence before the note's delta frame, found %f at [%d][%d]",
					out.Data[ch][i], ch, i)
			}
		}
	}
	var peak float32
	for _, sample := range out.Data[0][128:] {
		if sample > peak {
			peak = sample
		}
	}
	if peak == 0 {
		t.Error("Expected audio from the note's delta frame onward")
	}
}

func TestSynthNoteOffReleasesVoice(t *testing.T) {
	settings := newTestSettings(512)
	synth := newSynthPlugin("simplesynth")
	synth.Open()
	synth.Initialize(settings)

	in := audio.NewBuffer(settings.NumChannels(), settings.Blocksize())
	out := audio.NewBuffer(settings.NumChannels(), settings.Blocksize())

	synth.ProcessMidiEvents([]midi.Event{{Status: 0x90, Data1: 60, Data2: 100, DeltaFrames: 0}})
	synth.ProcessAudio(in, out)

	synth.ProcessMidiEvents([]midi.Event{{Status: 0x80, Data1: 60, Data2: 0, DeltaFrames: 0}})
	synth.ProcessAudio(in, out)

	// The release ramp is a few hundred samples; after two more blocks the
	// voice must be fully silent.
	synth.ProcessMidiEvents(nil)
	synth.ProcessAudio(in, out)
	synth.ProcessMidiEvents(nil)
	synth.ProcessAudio(in, out)

	if peak := peakLevel(out); peak != 0 {
		t.Errorf("Expected silence after release, got peak %f", peak)
	}
}
