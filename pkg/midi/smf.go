package midi

import (
	"fmt"
	"sort"
	"time"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/tcwalther/mrswatson/pkg/debug"
)

// Tempo assumed until the file's first tempo event, per the MIDI spec.
const defaultTempoBPM = 120.0

// FileSource loads a standard MIDI file (Type 0 or Type 1) and materializes
// every event onto the sample timeline at once. Streaming event delivery is
// not supported; the whole file is read before the processing loop starts.
type FileSource struct {
	path string
	data *smf.SMF
}

// NewFileSource creates a source over a standard MIDI file.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name returns the display name of the source.
func (s *FileSource) Name() string { return s.path }

// Open reads and parses the file.
func (s *FileSource) Open() error {
	data, err := smf.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("opening '%s': %w", s.path, err)
	}
	s.data = data
	return nil
}

// tempoChange is a tempo event on the merged tick timeline. elapsed is the
// wall-clock time from the start of the file to the change, filled in once
// all changes are known.
type tempoChange struct {
	tick    uint64
	bpm     float64
	elapsed time.Duration
}

// rawEvent is a channel event with its absolute tick.
type rawEvent struct {
	tick   uint64
	status byte
	data1  byte
	data2  byte
}

// ReadAll converts every channel event in the file to an absolute sample
// position using the file's tempo map and the given sample rate, and adds
// them to seq in timestamp order.
func (s *FileSource) ReadAll(sampleRate float64, seq *Sequence) error {
	if s.data == nil {
		return fmt.Errorf("MIDI source '%s' is not open", s.path)
	}
	ticks, ok := s.data.TimeFormat.(smf.MetricTicks)
	if !ok {
		return fmt.Errorf("'%s' uses SMPTE time division, which is not supported", s.path)
	}

	var tempi []tempoChange
	var events []rawEvent
	for _, track := range s.data.Tracks {
		var absTick uint64
		for _, ev := range track {
			absTick += uint64(ev.Delta)

			var bpm float64
			if ev.Message.GetMetaTempo(&bpm) {
				tempi = append(tempi, tempoChange{tick: absTick, bpm: bpm})
				continue
			}

			raw := ev.Message.Bytes()
			if len(raw) == 0 || raw[0] < 0x80 || raw[0] >= 0xF0 {
				// Meta and system events carry no timeline payload for the
				// plugin chain.
				continue
			}
			event := rawEvent{tick: absTick, status: raw[0]}
			if len(raw) > 1 {
				event.data1 = raw[1]
			}
			if len(raw) > 2 {
				event.data2 = raw[2]
			}
			events = append(events, event)
		}
	}

	tempi = mergeTempoChanges(tempi, ticks)

	for _, event := range events {
		elapsed := tickToTime(event.tick, tempi, ticks)
		timestamp := uint64(elapsed.Seconds() * sampleRate)
		seq.Add(Event{
			Status:    event.status,
			Data1:     event.data1,
			Data2:     event.data2,
			Timestamp: timestamp,
		})
	}
	seq.sortEvents()

	debug.Debug("Read %d events and %d tempo changes from '%s'",
		len(events), len(tempi)-1, s.path)
	return nil
}

// Close releases the parsed file data. Safe to call more than once.
func (s *FileSource) Close() error {
	s.data = nil
	return nil
}

// mergeTempoChanges sorts tempo changes from all tracks onto one timeline,
// anchors the default tempo at tick zero, and computes the elapsed time at
// each change.
func mergeTempoChanges(tempi []tempoChange, ticks smf.MetricTicks) []tempoChange {
	sort.SliceStable(tempi, func(i, j int) bool {
		return tempi[i].tick < tempi[j].tick
	})
	merged := make([]tempoChange, 0, len(tempi)+1)
	merged = append(merged, tempoChange{tick: 0, bpm: defaultTempoBPM})
	for _, change := range tempi {
		if change.tick == 0 {
			merged[0].bpm = change.bpm
			continue
		}
		merged = append(merged, change)
	}
	for i := 1; i < len(merged); i++ {
		prev := merged[i-1]
		merged[i].elapsed = prev.elapsed +
			ticks.Duration(prev.bpm, uint32(merged[i].tick-prev.tick))
	}
	return merged
}

// tickToTime converts an absolute tick to elapsed time using the tempo map.
func tickToTime(tick uint64, tempi []tempoChange, ticks smf.MetricTicks) time.Duration {
	last := tempi[0]
	for _, change := range tempi[1:] {
		if change.tick > tick {
			break
		}
		last = change
	}
	return last.elapsed + ticks.Duration(last.bpm, uint32(tick-last.tick))
}
