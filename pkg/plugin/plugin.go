// Package plugin provides the host-side plugin abstraction: a uniform
// process/dispatch interface over heterogeneous backends, and the ordered
// chain that drives them.
package plugin

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tcwalther/mrswatson/pkg/audio"
	"github.com/tcwalther/mrswatson/pkg/midi"
)

// Type identifies the backend of a plugin.
type Type int

const (
	// TypeInvalid marks a plugin whose name could not be resolved.
	TypeInvalid Type = iota
	// TypeVST2 is a plugin loaded from a VST2 dynamic library.
	TypeVST2
	// TypeInternal is a plugin built into the host.
	TypeInternal
)

// String returns the display name of the plugin type.
func (t Type) String() string {
	switch t {
	case TypeVST2:
		return "VST2"
	case TypeInternal:
		return "internal"
	default:
		return "invalid"
	}
}

// Subtype classifies what a plugin does with its input.
type Subtype int

const (
	// SubtypeUnknown means the backend did not report a role.
	SubtypeUnknown Subtype = iota
	// SubtypeEffect transforms an incoming audio stream.
	SubtypeEffect
	// SubtypeInstrument synthesizes audio, typically from MIDI, and
	// tolerates a silent audio input.
	SubtypeInstrument
)

// String returns the display name of the plugin subtype.
func (s Subtype) String() string {
	switch s {
	case SubtypeEffect:
		return "effect"
	case SubtypeInstrument:
		return "instrument"
	default:
		return "unknown"
	}
}

// Plugin is a polymorphic audio/MIDI processor. The lifecycle is strict:
// Open loads the backend, Initialize communicates the audio settings, then
// zero or more blocks are processed, then Close releases the backend. A
// plugin must be opened before initialization and initialized before
// processing.
type Plugin interface {
	// Name returns the symbolic name the plugin was created from.
	Name() string
	// Type returns the backend type.
	Type() Type
	// Subtype reports whether the plugin is an effect or an instrument.
	// Only meaningful after Open.
	Subtype() Subtype
	// Open locates and loads the plugin.
	Open() error
	// Initialize communicates the audio settings to the plugin. Required
	// before any processing.
	Initialize(settings *audio.Settings) error
	// ProcessAudio transforms one block. It may read in and must fully
	// populate out. No allocation in the hot path.
	ProcessAudio(in, out *audio.Buffer)
	// ProcessMidiEvents delivers the events for the current block, each
	// carrying its offset within the block.
	ProcessMidiEvents(events []midi.Event)
	// DisplayInfo logs descriptive metadata about the plugin.
	DisplayInfo()
	// Close releases plugin resources. Safe to call more than once.
	Close() error
}

// Dynamic library extensions recognized as VST2 plugins.
var vst2Extensions = []string{".so", ".dll", ".dylib", ".vst"}

// NewPlugin resolves a symbolic plugin name to a backend. Names of internal
// plugins resolve to the builtin registry; anything else must name a VST2
// dynamic library on disk.
func NewPlugin(name string) (Plugin, error) {
	base, args, err := parsePluginName(name)
	if err != nil {
		return nil, err
	}
	if builder, ok := builtins[base]; ok {
		return builder(base, args)
	}
	if len(args) > 0 {
		return nil, fmt.Errorf("plugin '%s' does not take arguments", base)
	}
	if path, ok := locateVST2(base); ok {
		return newVST2Plugin(base, path), nil
	}
	return nil, fmt.Errorf("could not resolve plugin '%s'", name)
}

// parsePluginName splits "name(key=value)" into the base name and its
// argument map. Names without parentheses have no arguments.
func parsePluginName(name string) (string, map[string]string, error) {
	open := strings.IndexByte(name, '(')
	if open < 0 {
		return name, nil, nil
	}
	if !strings.HasSuffix(name, ")") {
		return "", nil, fmt.Errorf("malformed plugin name '%s'", name)
	}
	base := name[:open]
	args := make(map[string]string)
	for _, pair := range strings.Split(name[open+1:len(name)-1], " ") {
		if pair == "" {
			continue
		}
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return "", nil, fmt.Errorf("malformed plugin argument '%s' in '%s'", pair, name)
		}
		args[key] = value
	}
	return base, args, nil
}

// locateVST2 finds the dynamic library for a plugin name. Bare names are
// tried with each platform library extension.
func locateVST2(name string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(name))
	for _, known := range vst2Extensions {
		if ext == known {
			if _, err := os.Stat(name); err == nil {
				return name, true
			}
			return "", false
		}
	}
	for _, known := range vst2Extensions {
		candidate := name + known
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}
