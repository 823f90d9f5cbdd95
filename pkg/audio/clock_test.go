package audio

import "testing"

func TestClockAdvance(t *testing.T) {
	clock := NewClock()

	if clock.CurrentSample() != 0 {
		t.Errorf("Expected new clock at sample 0, got %d", clock.CurrentSample())
	}
	if !clock.IsRunning() {
		t.Error("Expected new clock to be running")
	}

	clock.Advance(512)
	clock.Advance(512)
	if clock.CurrentSample() != 1024 {
		t.Errorf("Expected sample 1024, got %d", clock.CurrentSample())
	}
}

func TestClockIgnoresInvalidAdvance(t *testing.T) {
	clock := NewClock()
	clock.Advance(0)
	clock.Advance(-256)
	if clock.CurrentSample() != 0 {
		t.Errorf("Expected sample 0 after invalid advances, got %d", clock.CurrentSample())
	}
}

func TestClockStopFreezesPosition(t *testing.T) {
	clock := NewClock()
	clock.Advance(256)
	clock.Stop()

	if clock.IsRunning() {
		t.Error("Expected stopped clock to not be running")
	}

	clock.Advance(256)
	if clock.CurrentSample() != 256 {
		t.Errorf("Expected stopped clock to stay at 256, got %d", clock.CurrentSample())
	}
}
