// Package audio provides the core audio data model for the host: processing
// settings, the transport clock, sample buffers, and sample sources.
package audio

import "fmt"

// Default processing settings, used unless overridden on the command line.
const (
	DefaultSampleRate  = 44100.0
	DefaultBlocksize   = 512
	DefaultNumChannels = 2
)

// Settings holds the process-wide audio configuration. All buffers, sources,
// and plugins observe these values. Settings are written once during setup
// and must not change while the processing loop is running.
type Settings struct {
	sampleRate  float64
	blocksize   int
	numChannels int
}

// NewSettings creates settings initialized to the defaults.
func NewSettings() *Settings {
	return &Settings{
		sampleRate:  DefaultSampleRate,
		blocksize:   DefaultBlocksize,
		numChannels: DefaultNumChannels,
	}
}

// SampleRate returns the sample rate in Hz.
func (s *Settings) SampleRate() float64 {
	return s.sampleRate
}

// SetSampleRate sets the sample rate in Hz.
func (s *Settings) SetSampleRate(rate float64) error {
	if rate <= 0 {
		return fmt.Errorf("invalid sample rate %f", rate)
	}
	s.sampleRate = rate
	return nil
}

// Blocksize returns the number of frames processed per iteration.
func (s *Settings) Blocksize() int {
	return s.blocksize
}

// SetBlocksize sets the number of frames processed per iteration.
func (s *Settings) SetBlocksize(blocksize int) error {
	if blocksize <= 0 {
		return fmt.Errorf("invalid blocksize %d", blocksize)
	}
	s.blocksize = blocksize
	return nil
}

// NumChannels returns the channel count.
func (s *Settings) NumChannels() int {
	return s.numChannels
}

// SetNumChannels sets the channel count.
func (s *Settings) SetNumChannels(numChannels int) error {
	if numChannels < 1 {
		return fmt.Errorf("invalid channel count %d", numChannels)
	}
	s.numChannels = numChannels
	return nil
}
