package plugin

import (
	"testing"

	"github.com/tcwalther/mrswatson/pkg/audio"
)

func TestDelayEchoesImpulse(t *testing.T) {
	// A 4-sample delay at 8000 Hz is 0.5 ms.
	plugin, err := NewPlugin("delay(time=0.5 feedback=0 mix=0.5)")
	if err != nil {
		t.Fatalf("NewPlugin failed: %v", err)
	}
	settings := audio.NewSettings()
	settings.SetSampleRate(8000)
	settings.SetBlocksize(16)
	plugin.Open()
	if err := plugin.Initialize(settings); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	in := audio.NewBuffer(settings.NumChannels(), settings.Blocksize())
	out := audio.NewBuffer(settings.NumChannels(), settings.Blocksize())
	in.Data[0][0] = 1.0

	plugin.ProcessAudio(in, out)

	if out.Data[0][0] != 0.5 {
		t.Errorf("Expected dry impulse scaled by mix, got %f", out.Data[0][0])
	}
	if out.Data[0][4] != 0.5 {
		t.Errorf("Expected echo at sample 4, got %f", out.Data[0][4])
	}
	for _, i := range []int{1, 2, 3, 5, 6} {
		if out.Data[0][i] != 0 {
			t.Errorf("Expected silence at sample %d, got %f", i, out.Data[0][i])
		}
	}
}

func TestDelayRejectsBadArguments(t *testing.T) {
	bad := []string{
		"delay(time=0)",
		"delay(time=-10)",
		"delay(feedback=1)",
		"delay(mix=1.5)",
		"delay(tempo=120)",
		"delay(time=fast)",
	}
	for _, name := range bad {
		if _, err := NewPlugin(name); err == nil {
			t.Errorf("Expected %q to fail", name)
		}
	}
}
