package plugin

import (
	"fmt"
	"strconv"

	"github.com/tcwalther/mrswatson/pkg/audio"
	"github.com/tcwalther/mrswatson/pkg/debug"
	"github.com/tcwalther/mrswatson/pkg/dsp/gain"
	"github.com/tcwalther/mrswatson/pkg/midi"
)

// builtins maps internal plugin names to their constructors. Constructors
// receive the arguments parsed from the plugin name.
var builtins = map[string]func(name string, args map[string]string) (Plugin, error){
	"passthru": func(name string, args map[string]string) (Plugin, error) {
		if len(args) > 0 {
			return nil, fmt.Errorf("plugin '%s' does not take arguments", name)
		}
		return &passthruPlugin{name: name}, nil
	},
	"again": newAgainPlugin,
	"delay": newDelayPlugin,
	"simplesynth": func(name string, args map[string]string) (Plugin, error) {
		if len(args) > 0 {
			return nil, fmt.Errorf("plugin '%s' does not take arguments", name)
		}
		return newSynthPlugin(name), nil
	},
}

// InternalPluginNames returns the names of the plugins built into the host.
func InternalPluginNames() []string {
	return []string{"again", "delay", "passthru", "simplesynth"}
}

// passthruPlugin copies its input to its output unchanged. Useful for
// testing the host itself.
type passthruPlugin struct {
	name string
}

func (p *passthruPlugin) Name() string     { return p.name }
func (p *passthruPlugin) Type() Type       { return TypeInternal }
func (p *passthruPlugin) Subtype() Subtype { return SubtypeEffect }

func (p *passthruPlugin) Open() error { return nil }

func (p *passthruPlugin) Initialize(settings *audio.Settings) error { return nil }

func (p *passthruPlugin) ProcessAudio(in, out *audio.Buffer) {
	out.CopyFrom(in)
}

func (p *passthruPlugin) ProcessMidiEvents(events []midi.Event) {}

func (p *passthruPlugin) DisplayInfo() {
	debug.Info("Plugin '%s' (internal effect): passes audio through unchanged", p.name)
}

func (p *passthruPlugin) Close() error { return nil }

// againPlugin applies a fixed linear gain to every sample.
type againPlugin struct {
	name   string
	factor float32
}

func newAgainPlugin(name string, args map[string]string) (Plugin, error) {
	plugin := &againPlugin{name: name, factor: 1.0}
	for key, value := range args {
		switch key {
		case "gain":
			factor, err := strconv.ParseFloat(value, 32)
			if err != nil {
				return nil, fmt.Errorf("invalid gain value '%s' for plugin '%s'", value, name)
			}
			plugin.factor = float32(factor)
		case "db":
			db, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid dB value '%s' for plugin '%s'", value, name)
			}
			plugin.factor = float32(gain.DbToLinear(db))
		default:
			return nil, fmt.Errorf("unknown argument '%s' for plugin '%s'", key, name)
		}
	}
	return plugin, nil
}

func (p *againPlugin) Name() string     { return p.name }
func (p *againPlugin) Type() Type       { return TypeInternal }
func (p *againPlugin) Subtype() Subtype { return SubtypeEffect }

func (p *againPlugin) Open() error { return nil }

func (p *againPlugin) Initialize(settings *audio.Settings) error { return nil }

func (p *againPlugin) ProcessAudio(in, out *audio.Buffer) {
	for ch := range in.Data {
		gain.Apply(in.Data[ch], p.factor, out.Data[ch])
	}
}

func (p *againPlugin) ProcessMidiEvents(events []midi.Event) {}

func (p *againPlugin) DisplayInfo() {
	debug.Info("Plugin '%s' (internal effect): gain %.3f (%.1f dB)",
		p.name, p.factor, gain.LinearToDb(float64(p.factor)))
}

func (p *againPlugin) Close() error { return nil }
