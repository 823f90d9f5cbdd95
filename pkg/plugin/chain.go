package plugin

import (
	"fmt"
	"strings"

	"github.com/tcwalther/mrswatson/pkg/audio"
	"github.com/tcwalther/mrswatson/pkg/debug"
	"github.com/tcwalther/mrswatson/pkg/midi"
)

// TaskTimer receives the index of the task about to run. The chain brackets
// every plugin call with a Start so the host can account for where the time
// goes.
type TaskTimer interface {
	Start(id int)
}

// Chain is an ordered sequence of plugins. Audio flows through the chain
// left to right, each plugin reading the previous plugin's output. MIDI is
// delivered to every plugin in the same order, always before the audio pass
// for the same block.
type Chain struct {
	plugins []Plugin

	// Scratch buffers alternate ownership of the intermediate signal so
	// the audio pass never allocates.
	scratch [2]*audio.Buffer
}

// NewChain creates an empty chain.
func NewChain() *Chain {
	return &Chain{}
}

// Len returns the number of plugins in the chain.
func (c *Chain) Len() int {
	return len(c.plugins)
}

// Plugins returns the plugins in chain order.
func (c *Chain) Plugins() []Plugin {
	return c.plugins
}

// Head returns the first plugin of the chain, or nil when empty.
func (c *Chain) Head() Plugin {
	if len(c.plugins) == 0 {
		return nil
	}
	return c.plugins[0]
}

// AddFromArgumentString parses a delimited list of plugin names (comma or
// semicolon separated) and appends the resolved plugins in order. If any
// name fails to resolve the chain is left unmodified.
func (c *Chain) AddFromArgumentString(arg string) error {
	names := strings.FieldsFunc(arg, func(r rune) bool {
		return r == ',' || r == ';'
	})

	resolved := make([]Plugin, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		plugin, err := NewPlugin(name)
		if err != nil {
			return err
		}
		resolved = append(resolved, plugin)
	}
	c.plugins = append(c.plugins, resolved...)
	return nil
}

// Add appends an already-constructed plugin to the chain.
func (c *Chain) Add(plugin Plugin) {
	c.plugins = append(c.plugins, plugin)
}

// InitializeAll opens and initializes every plugin in chain order and
// allocates the scratch buffers. Failure at any index is fatal. An
// instrument is only legal at the head of the chain, since only the head
// can legitimately consume silence paired with MIDI as input.
func (c *Chain) InitializeAll(settings *audio.Settings) error {
	for i, plugin := range c.plugins {
		if err := plugin.Open(); err != nil {
			return fmt.Errorf("opening plugin %d: %w", i, err)
		}
		if i > 0 && plugin.Subtype() == SubtypeInstrument {
			return fmt.Errorf("instrument plugin '%s' must be first in the chain", plugin.Name())
		}
		if err := plugin.Initialize(settings); err != nil {
			return fmt.Errorf("initializing plugin '%s': %w", plugin.Name(), err)
		}
		debug.Debug("Initialized plugin '%s' (%s %s)",
			plugin.Name(), plugin.Type(), plugin.Subtype())
	}

	c.scratch[0] = audio.NewBuffer(settings.NumChannels(), settings.Blocksize())
	c.scratch[1] = audio.NewBuffer(settings.NumChannels(), settings.Blocksize())
	return nil
}

// ProcessAudio drives one block through the chain. The first plugin reads
// from in, the last writes to out, and the scratch pair alternates in
// between. A single-plugin chain processes in to out directly.
func (c *Chain) ProcessAudio(in, out *audio.Buffer, timer TaskTimer) {
	current := in
	last := len(c.plugins) - 1
	for i, plugin := range c.plugins {
		dst := out
		if i < last {
			dst = c.scratch[i%2]
		}
		if timer != nil {
			timer.Start(i)
		}
		plugin.ProcessAudio(current, dst)
		current = dst
	}
}

// ProcessMidiEvents delivers the block's events to every plugin in chain
// order, timing each delivery.
func (c *Chain) ProcessMidiEvents(events []midi.Event, timer TaskTimer) {
	for i, plugin := range c.plugins {
		if timer != nil {
			timer.Start(i)
		}
		plugin.ProcessMidiEvents(events)
	}
}

// DisplayInfo logs descriptive metadata for every plugin in chain order.
func (c *Chain) DisplayInfo() {
	for _, plugin := range c.plugins {
		plugin.DisplayInfo()
	}
}

// Close releases every plugin. Safe to call more than once.
func (c *Chain) Close() {
	for _, plugin := range c.plugins {
		if err := plugin.Close(); err != nil {
			debug.Warn("Closing plugin '%s': %v", plugin.Name(), err)
		}
	}
}
