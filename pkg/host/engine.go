package host

import (
	"errors"
	"fmt"
	"time"

	"github.com/tcwalther/mrswatson/pkg/audio"
	"github.com/tcwalther/mrswatson/pkg/debug"
	"github.com/tcwalther/mrswatson/pkg/midi"
	"github.com/tcwalther/mrswatson/pkg/plugin"
)

// Validation errors reported before the processing loop starts.
var (
	ErrEmptyChain     = errors.New("no plugins loaded")
	ErrNoOutputSource = errors.New("no output source")
	ErrNoInputSource  = errors.New("no input source")
	ErrNoMidiSource   = errors.New("plugin chain contains an instrument, but no MIDI events were supplied")
)

// Engine drives the processing loop: it pulls blocks from the input source,
// slices MIDI events for each block, runs the plugin chain, and pushes the
// result to the output source, advancing the transport clock as it goes.
// The engine runs on a single goroutine; all components are scoped to one
// call of Run and released before it returns.
type Engine struct {
	Settings *audio.Settings
	Clock    *audio.Clock
	Input    audio.Source
	Output   audio.Source
	Chain    *plugin.Chain
	Sequence *midi.Sequence

	// TailTime keeps driving silence through the chain after the input
	// ends, giving reverbs and delays room to decay.
	TailTime time.Duration
}

// Run validates the engine's configuration, executes the processing loop to
// completion, reports timing statistics, and releases every resource. The
// returned error is nil on a full successful run.
func (e *Engine) Run() error {
	if e.Chain == nil || e.Chain.Len() == 0 {
		return ErrEmptyChain
	}
	defer e.Chain.Close()
	if e.Output == nil {
		return ErrNoOutputSource
	}
	if e.Input == nil {
		if e.Chain.Head().Subtype() != plugin.SubtypeInstrument {
			return ErrNoInputSource
		}
		if e.Sequence == nil || e.Sequence.Len() == 0 {
			return ErrNoMidiSource
		}
		debug.Debug("No input source given; feeding silence to instrument '%s'",
			e.Chain.Head().Name())
		e.Input = audio.NewSilenceSource(e.Settings)
	}

	if err := e.Input.Open(audio.DirectionRead); err != nil {
		return fmt.Errorf("input source: %w", err)
	}
	defer e.closeSource(e.Input)
	if err := e.Output.Open(audio.DirectionWrite); err != nil {
		return fmt.Errorf("output source: %w", err)
	}
	defer e.closeSource(e.Output)

	blocksize := e.Settings.Blocksize()
	debug.Info("Processing with sample rate %.0f, blocksize %d, %d channels",
		e.Settings.SampleRate(), blocksize, e.Settings.NumChannels())

	inBuf := audio.NewBuffer(e.Settings.NumChannels(), blocksize)
	outBuf := audio.NewBuffer(e.Settings.NumChannels(), blocksize)
	events := make([]midi.Event, 0, 64)

	// The last timer slot is reserved for the host itself.
	timer := NewTaskTimer(e.Chain.Len() + 1)
	hostTask := timer.NumTasks() - 1

	haveMidi := e.Sequence != nil && e.Sequence.Len() > 0
	finishedReading := false
	var runErr error

	for !finishedReading {
		timer.Start(hostTask)
		finishedReading = !e.Input.ReadBlock(inBuf)

		if haveMidi {
			events = events[:0]
			moreEvents := e.Sequence.FillRange(e.Clock.CurrentSample(), blocksize, &events)
			if moreEvents == finishedReading {
				// The two end conditions disagree; the MIDI timeline wins.
				debug.Debug("MIDI and audio end-of-stream disagree at sample %d (midi done: %t, audio done: %t)",
					e.Clock.CurrentSample(), !moreEvents, finishedReading)
			}
			finishedReading = !moreEvents
			e.Chain.ProcessMidiEvents(events, timer)
			timer.Start(hostTask)
		}

		e.Chain.ProcessAudio(inBuf, outBuf, timer)
		timer.Start(hostTask)

		if err := e.Output.WriteBlock(outBuf); err != nil {
			debug.Error("Writing output failed: %v", err)
			runErr = fmt.Errorf("output source: %w", err)
			break
		}
		e.Clock.Advance(blocksize)
	}

	if runErr == nil && e.TailTime > 0 {
		e.runTail(inBuf, outBuf, timer, hostTask, &runErr)
	}

	e.Clock.Stop()
	timer.Stop()
	e.logStatistics(timer, hostTask)

	return runErr
}

// runTail drives silence through the chain for the configured tail time so
// that decaying effects ring out into the output.
func (e *Engine) runTail(inBuf, outBuf *audio.Buffer, timer *TaskTimer, hostTask int, runErr *error) {
	blocksize := e.Settings.Blocksize()
	tailFrames := int(e.TailTime.Seconds() * e.Settings.SampleRate())
	tailBlocks := (tailFrames + blocksize - 1) / blocksize
	debug.Debug("Driving %d blocks of tail silence through the chain", tailBlocks)

	inBuf.Clear()
	for block := 0; block < tailBlocks; block++ {
		timer.Start(hostTask)
		e.Chain.ProcessAudio(inBuf, outBuf, timer)
		timer.Start(hostTask)
		if err := e.Output.WriteBlock(outBuf); err != nil {
			debug.Error("Writing output failed: %v", err)
			*runErr = fmt.Errorf("output source: %w", err)
			return
		}
		e.Clock.Advance(blocksize)
	}
}

// logStatistics reports total processing time, the per-component breakdown,
// and the frame counters of both sources.
func (e *Engine) logStatistics(timer *TaskTimer, hostTask int) {
	var total time.Duration
	for _, taskTotal := range timer.Totals() {
		total += taskTotal
	}
	debug.Info("Total processing time %dms, approximate breakdown by component:",
		total.Milliseconds())
	for i, p := range e.Chain.Plugins() {
		debug.Info("  %s: %dms (%.1f%%)", p.Name(),
			timer.Total(i).Milliseconds(), percentage(timer.Total(i), total))
	}
	debug.Info("  host: %dms (%.1f%%)",
		timer.Total(hostTask).Milliseconds(), percentage(timer.Total(hostTask), total))

	debug.Info("Read %d frames from %s, wrote %d frames to %s",
		e.Input.FramesProcessed(), e.Input.Name(),
		e.Output.FramesProcessed(), e.Output.Name())
}

func percentage(part, total time.Duration) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(part) / float64(total)
}

func (e *Engine) closeSource(source audio.Source) {
	if err := source.Close(); err != nil {
		debug.Warn("Closing source '%s': %v", source.Name(), err)
	}
}
