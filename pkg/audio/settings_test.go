package audio

import "testing"

func TestSettingsDefaults(t *testing.T) {
	settings := NewSettings()

	if settings.SampleRate() != DefaultSampleRate {
		t.Errorf("Expected default sample rate %f, got %f", DefaultSampleRate, settings.SampleRate())
	}
	if settings.Blocksize() != DefaultBlocksize {
		t.Errorf("Expected default blocksize %d, got %d", DefaultBlocksize, settings.Blocksize())
	}
	if settings.NumChannels() != DefaultNumChannels {
		t.Errorf("Expected default channel count %d, got %d", DefaultNumChannels, settings.NumChannels())
	}
}

func TestSettingsValidation(t *testing.T) {
	tests := []struct {
		name    string
		apply   func(*Settings) error
		wantErr bool
	}{
		{"valid sample rate", func(s *Settings) error { return s.SetSampleRate(48000) }, false},
		{"zero sample rate", func(s *Settings) error { return s.SetSampleRate(0) }, true},
		{"negative sample rate", func(s *Settings) error { return s.SetSampleRate(-44100) }, true},
		{"valid blocksize", func(s *Settings) error { return s.SetBlocksize(256) }, false},
		{"non power of two blocksize", func(s *Settings) error { return s.SetBlocksize(441) }, false},
		{"zero blocksize", func(s *Settings) error { return s.SetBlocksize(0) }, true},
		{"valid channels", func(s *Settings) error { return s.SetNumChannels(1) }, false},
		{"zero channels", func(s *Settings) error { return s.SetNumChannels(0) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.apply(NewSettings())
			if (err != nil) != tt.wantErr {
				t.Errorf("got error %v, wantErr %t", err, tt.wantErr)
			}
		})
	}
}
