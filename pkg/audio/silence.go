package audio

// SilenceSource produces zero-filled blocks indefinitely. The engine uses it
// as the input for a chain headed by an instrument, where the real signal
// comes from MIDI rather than an input file.
type SilenceSource struct {
	state  SourceState
	frames uint64
}

// NewSilenceSource creates a silence source.
func NewSilenceSource(settings *Settings) *SilenceSource {
	return &SilenceSource{}
}

// Name returns the display name of the source.
func (s *SilenceSource) Name() string { return "(silence)" }

// Type returns SourceTypeSilence.
func (s *SilenceSource) Type() SourceType { return SourceTypeSilence }

// Open marks the generator ready. Silence can only be read.
func (s *SilenceSource) Open(dir Direction) error {
	s.state = StateOpen
	return nil
}

// ReadBlock fills buf with zeros. Silence never ends, so this always
// returns true.
func (s *SilenceSource) ReadBlock(buf *Buffer) bool {
	buf.Clear()
	s.frames += uint64(buf.Blocksize())
	return true
}

// WriteBlock is not supported on a silence source.
func (s *SilenceSource) WriteBlock(buf *Buffer) error {
	return errSourceNotWritable
}

// FramesProcessed returns the total frames generated.
func (s *SilenceSource) FramesProcessed() uint64 { return s.frames }

// Close releases the generator.
func (s *SilenceSource) Close() error {
	s.state = StateClosed
	return nil
}
