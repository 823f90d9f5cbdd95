package plugin

import (
	"fmt"
	"strconv"

	"github.com/tcwalther/mrswatson/pkg/audio"
	"github.com/tcwalther/mrswatson/pkg/debug"
	"github.com/tcwalther/mrswatson/pkg/dsp/delay"
	"github.com/tcwalther/mrswatson/pkg/midi"
)

const (
	defaultDelayTimeMs   = 250.0
	defaultDelayFeedback = 0.3
	defaultDelayMix      = 0.5
)

// delayPlugin is the internal feedback delay effect.
type delayPlugin struct {
	name     string
	timeMs   float64
	feedback float32
	mix      float32

	lines []*delay.Line
}

func newDelayPlugin(name string, args map[string]string) (Plugin, error) {
	plugin := &delayPlugin{
		name:     name,
		timeMs:   defaultDelayTimeMs,
		feedback: defaultDelayFeedback,
		mix:      defaultDelayMix,
	}
	for key, value := range args {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value '%s' for argument '%s' of plugin '%s'", value, key, name)
		}
		switch key {
		case "time":
			if parsed <= 0 {
				return nil, fmt.Errorf("delay time must be positive, got %s", value)
			}
			plugin.timeMs = parsed
		case "feedback":
			if parsed < 0 || parsed >= 1 {
				return nil, fmt.Errorf("feedback must be in [0, 1), got %s", value)
			}
			plugin.feedback = float32(parsed)
		case "mix":
			if parsed < 0 || parsed > 1 {
				return nil, fmt.Errorf("mix must be in [0, 1], got %s", value)
			}
			plugin.mix = float32(parsed)
		default:
			return nil, fmt.Errorf("unknown argument '%s' for plugin '%s'", key, name)
		}
	}
	return plugin, nil
}

func (p *delayPlugin) Name() string     { return p.name }
func (p *delayPlugin) Type() Type       { return TypeInternal }
func (p *delayPlugin) Subtype() Subtype { return SubtypeEffect }

func (p *delayPlugin) Open() error { return nil }

func (p *delayPlugin) Initialize(settings *audio.Settings) error {
	delaySamples := int(p.timeMs / 1000.0 * settings.SampleRate())
	p.lines = make([]*delay.Line, settings.NumChannels())
	for ch := range p.lines {
		p.lines[ch] = delay.New(delaySamples)
	}
	return nil
}

func (p *delayPlugin) ProcessAudio(in, out *audio.Buffer) {
	dry := 1 - p.mix
	for ch := range in.Data {
		line := p.lines[ch]
		src := in.Data[ch]
		dst := out.Data[ch]
		for i := range src {
			delayed := line.Read()
			line.Write(src[i] + delayed*p.feedback)
			dst[i] = src[i]*dry + delayed*p.mix
		}
	}
}

func (p *delayPlugin) ProcessMidiEvents(events []midi.Event) {}

func (p *delayPlugin) DisplayInfo() {
	debug.Info("Plugin '%s' (internal effect): %.0fms delay, feedback %.2f, mix %.2f",
		p.name, p.timeMs, p.feedback, p.mix)
}

func (p *delayPlugin) Close() error { return nil }
