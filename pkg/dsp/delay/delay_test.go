package delay

import "testing"

func TestLineDelaysByLength(t *testing.T) {
	line := New(3)

	impulse := []float32{1, 0, 0, 0, 0, 0}
	want := []float32{0, 0, 0, 1, 0, 0}
	for i, input := range impulse {
		if got := line.Process(input); got != want[i] {
			t.Errorf("Sample %d: got %f, want %f", i, got, want[i])
		}
	}
}

func TestLineReset(t *testing.T) {
	line := New(2)
	line.Process(1)
	line.Process(1)
	line.Reset()

	for i := 0; i < 2; i++ {
		if got := line.Process(0); got != 0 {
			t.Errorf("Expected silence after reset, got %f", got)
		}
	}
}

func TestLineMinimumLength(t *testing.T) {
	line := New(0)
	line.Process(0.5)
	if got := line.Process(0); got != 0.5 {
		t.Errorf("Expected one-sample delay, got %f", got)
	}
}
