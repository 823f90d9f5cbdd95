package audio

import (
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/tcwalther/mrswatson/pkg/debug"
)

// Bit depth used when writing output files.
const outputBitDepth = 16

// wavSource reads and writes RIFF/WAVE files.
type wavSource struct {
	path     string
	settings *Settings
	state    SourceState
	dir      Direction

	file    *os.File
	decoder *wav.Decoder
	encoder *wav.Encoder
	intBuf  *goaudio.IntBuffer

	frames uint64
}

func newWAVSource(path string, settings *Settings) *wavSource {
	return &wavSource{path: path, settings: settings}
}

func (s *wavSource) Name() string     { return s.path }
func (s *wavSource) Type() SourceType { return SourceTypeWAV }

func (s *wavSource) Open(dir Direction) error {
	s.dir = dir
	numSamples := s.settings.NumChannels() * s.settings.Blocksize()

	switch dir {
	case DirectionRead:
		file, err := os.Open(s.path)
		if err != nil {
			s.state = StateFailed
			return fmt.Errorf("opening '%s': %w", s.path, err)
		}
		decoder := wav.NewDecoder(file)
		if !decoder.IsValidFile() {
			file.Close()
			s.state = StateFailed
			return fmt.Errorf("'%s' is not a valid WAV file", s.path)
		}
		if err := decoder.FwdToPCM(); err != nil {
			file.Close()
			s.state = StateFailed
			return fmt.Errorf("locating samples in '%s': %w", s.path, err)
		}
		if float64(decoder.SampleRate) != s.settings.SampleRate() {
			debug.Warn("Sample rate of '%s' is %d, host is running at %.0f; no conversion is applied",
				s.path, decoder.SampleRate, s.settings.SampleRate())
		}
		if int(decoder.NumChans) != s.settings.NumChannels() {
			debug.Warn("Channel count of '%s' is %d, host is running with %d",
				s.path, decoder.NumChans, s.settings.NumChannels())
		}
		s.file = file
		s.decoder = decoder
		s.intBuf = &goaudio.IntBuffer{
			Format: &goaudio.Format{
				NumChannels: s.settings.NumChannels(),
				SampleRate:  int(s.settings.SampleRate()),
			},
			Data: make([]int, numSamples),
		}

	case DirectionWrite:
		file, err := os.Create(s.path)
		if err != nil {
			s.state = StateFailed
			return fmt.Errorf("creating '%s': %w", s.path, err)
		}
		s.file = file
		s.encoder = wav.NewEncoder(file,
			int(s.settings.SampleRate()), outputBitDepth, s.settings.NumChannels(), 1)
		s.intBuf = &goaudio.IntBuffer{
			Format: &goaudio.Format{
				NumChannels: s.settings.NumChannels(),
				SampleRate:  int(s.settings.SampleRate()),
			},
			Data:           make([]int, numSamples),
			SourceBitDepth: outputBitDepth,
		}
	}

	s.state = StateOpen
	return nil
}

func (s *wavSource) ReadBlock(buf *Buffer) bool {
	if s.decoder == nil {
		buf.Clear()
		return false
	}
	n, err := s.decoder.PCMBuffer(s.intBuf)
	if err != nil && err != io.EOF {
		debug.Error("Reading from '%s': %v", s.path, err)
		buf.Clear()
		return false
	}
	framesRead := n / s.settings.NumChannels()
	deinterleave(s.intBuf.Data, framesRead, int(s.decoder.BitDepth), buf)
	s.frames += uint64(framesRead)
	return framesRead == s.settings.Blocksize()
}

func (s *wavSource) WriteBlock(buf *Buffer) error {
	if s.encoder == nil {
		return errSourceNotWritable
	}
	interleave(buf, outputBitDepth, s.intBuf.Data)
	if err := s.encoder.Write(s.intBuf); err != nil {
		return fmt.Errorf("writing to '%s': %w", s.path, err)
	}
	s.frames += uint64(buf.Blocksize())
	return nil
}

func (s *wavSource) FramesProcessed() uint64 { return s.frames }

func (s *wavSource) Close() error {
	if s.state != StateOpen {
		return nil
	}
	s.state = StateClosed
	if s.encoder != nil {
		if err := s.encoder.Close(); err != nil {
			s.file.Close()
			return fmt.Errorf("finalizing '%s': %w", s.path, err)
		}
	}
	return s.file.Close()
}
