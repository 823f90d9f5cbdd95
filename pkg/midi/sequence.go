package midi

import "sort"

// Sequence is an ordered timeline of MIDI events, sorted by timestamp.
// Events are added while loading; once loading finishes the sequence is
// read-only for the rest of the run. Simultaneous events keep the order they
// had in the file.
type Sequence struct {
	events []Event
	sorted bool
}

// NewSequence creates an empty sequence.
func NewSequence() *Sequence {
	return &Sequence{
		events: make([]Event, 0, 128),
		sorted: true,
	}
}

// Add appends an event to the sequence.
func (s *Sequence) Add(event Event) {
	s.events = append(s.events, event)
	s.sorted = false
}

// Len returns the number of events in the sequence.
func (s *Sequence) Len() int {
	return len(s.events)
}

// sortEvents orders events by timestamp. The sort is stable so that events
// sharing a timestamp preserve their original file order.
func (s *Sequence) sortEvents() {
	if !s.sorted {
		sort.SliceStable(s.events, func(i, j int) bool {
			return s.events[i].Timestamp < s.events[j].Timestamp
		})
		s.sorted = true
	}
}

// FillRange appends to out every event with a timestamp in
// [startSample, startSample+blocksize), rewriting each event's DeltaFrames
// to its offset from startSample. It returns true if events remain at or
// after the end of the range; false means the timeline is exhausted and the
// caller should finish on the current block.
func (s *Sequence) FillRange(startSample uint64, blocksize int, out *[]Event) bool {
	s.sortEvents()

	if len(s.events) == 0 {
		return false
	}

	startIdx := sort.Search(len(s.events), func(i int) bool {
		return s.events[i].Timestamp >= startSample
	})
	if startIdx >= len(s.events) {
		return false
	}

	endSample := startSample + uint64(blocksize)
	endIdx := startIdx
	for endIdx < len(s.events) && s.events[endIdx].Timestamp < endSample {
		event := s.events[endIdx]
		event.DeltaFrames = int32(event.Timestamp - startSample)
		*out = append(*out, event)
		endIdx++
	}

	return endIdx < len(s.events)
}
