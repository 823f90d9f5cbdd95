// Package midi provides the MIDI event timeline for the host: raw channel
// events with absolute sample timestamps, the immutable sequence they live
// in, and a standard MIDI file source to load them from.
package midi

import "fmt"

// Status byte ranges of channel voice messages.
const (
	StatusNoteOff         = 0x80
	StatusNoteOn          = 0x90
	StatusPolyPressure    = 0xA0
	StatusControlChange   = 0xB0
	StatusProgramChange   = 0xC0
	StatusChannelPressure = 0xD0
	StatusPitchBend       = 0xE0
)

// Event is one raw MIDI channel message placed on the transport timeline.
// Timestamp is the absolute sample position assigned when the event was
// loaded; DeltaFrames is the offset within the current block, rewritten each
// time the sequence is sliced.
type Event struct {
	Status byte
	Data1  byte
	Data2  byte

	Timestamp   uint64
	DeltaFrames int32
}

// Channel returns the channel number encoded in the status byte.
func (e Event) Channel() uint8 {
	return e.Status & 0x0F
}

// IsNoteOn reports whether the event is a note-on with nonzero velocity.
// Note-ons with velocity zero are note-offs by convention.
func (e Event) IsNoteOn() bool {
	return e.Status&0xF0 == StatusNoteOn && e.Data2 > 0
}

// IsNoteOff reports whether the event releases a note.
func (e Event) IsNoteOff() bool {
	status := e.Status & 0xF0
	return status == StatusNoteOff || (status == StatusNoteOn && e.Data2 == 0)
}

func (e Event) String() string {
	return fmt.Sprintf("Event{status:%#02x, data:%d/%d, at:%d, delta:%d}",
		e.Status, e.Data1, e.Data2, e.Timestamp, e.DeltaFrames)
}
