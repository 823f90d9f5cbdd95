package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/tcwalther/mrswatson/pkg/debug"
)

// pcmSource reads and writes raw headerless PCM: 16-bit little-endian
// interleaved samples at the host's sample rate and channel count. There is
// no header to validate, so the settings are trusted as-is.
type pcmSource struct {
	path     string
	settings *Settings
	state    SourceState
	dir      Direction

	file *os.File
	raw  []byte

	frames uint64
}

func newPCMSource(path string, settings *Settings) *pcmSource {
	return &pcmSource{path: path, settings: settings}
}

func (s *pcmSource) Name() string     { return s.path }
func (s *pcmSource) Type() SourceType { return SourceTypePCM }

func (s *pcmSource) Open(dir Direction) error {
	s.dir = dir
	var err error
	switch dir {
	case DirectionRead:
		s.file, err = os.Open(s.path)
	case DirectionWrite:
		s.file, err = os.Create(s.path)
	}
	if err != nil {
		s.state = StateFailed
		return fmt.Errorf("opening '%s': %w", s.path, err)
	}
	s.raw = make([]byte, s.settings.NumChannels()*s.settings.Blocksize()*2)
	s.state = StateOpen
	return nil
}

func (s *pcmSource) ReadBlock(buf *Buffer) bool {
	n, err := io.ReadFull(s.file, s.raw)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		debug.Error("Reading from '%s': %v", s.path, err)
		buf.Clear()
		return false
	}

	numChannels := s.settings.NumChannels()
	framesRead := n / 2 / numChannels
	blocksize := s.settings.Blocksize()
	for frame := 0; frame < blocksize; frame++ {
		for ch := 0; ch < numChannels; ch++ {
			if frame < framesRead {
				sample := int16(binary.LittleEndian.Uint16(s.raw[(frame*numChannels+ch)*2:]))
				buf.Data[ch][frame] = float32(sample) / 32768.0
			} else {
				buf.Data[ch][frame] = 0
			}
		}
	}
	s.frames += uint64(framesRead)
	return framesRead == blocksize
}

func (s *pcmSource) WriteBlock(buf *Buffer) error {
	numChannels := buf.NumChannels()
	for frame := 0; frame < buf.Blocksize(); frame++ {
		for ch := 0; ch < numChannels; ch++ {
			sample := float64(buf.Data[ch][frame]) * 32768.0
			if sample > 32767 {
				sample = 32767
			} else if sample < -32768 {
				sample = -32768
			}
			binary.LittleEndian.PutUint16(s.raw[(frame*numChannels+ch)*2:], uint16(int16(sample)))
		}
	}
	if _, err := s.file.Write(s.raw); err != nil {
		return fmt.Errorf("writing to '%s': %w", s.path, err)
	}
	s.frames += uint64(buf.Blocksize())
	return nil
}

func (s *pcmSource) FramesProcessed() uint64 { return s.frames }

func (s *pcmSource) Close() error {
	if s.state != StateOpen {
		return nil
	}
	s.state = StateClosed
	return s.file.Close()
}
