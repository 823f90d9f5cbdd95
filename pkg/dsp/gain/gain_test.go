package gain

import (
	"math"
	"testing"
)

func TestDbConversion(t *testing.T) {
	tests := []struct {
		name    string
		linear  float64
		db      float64
		epsilon float64
	}{
		{"unity gain", 1.0, 0.0, 0.001},
		{"half amplitude", 0.5, -6.02, 0.01},
		{"double amplitude", 2.0, 6.02, 0.01},
		{"quarter amplitude", 0.25, -12.04, 0.01},
		{"zero amplitude", 0.0, MinDB, 0.001},
		{"negative amplitude", -1.0, MinDB, 0.001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LinearToDb(tt.linear); math.Abs(got-tt.db) > tt.epsilon {
				t.Errorf("LinearToDb(%f) = %f, want %f", tt.linear, got, tt.db)
			}
		})
	}
}

func TestDbToLinearRoundTrip(t *testing.T) {
	for _, db := range []float64{-24, -12, -6, 0, 6, 12} {
		linear := DbToLinear(db)
		if got := LinearToDb(linear); math.Abs(got-db) > 0.001 {
			t.Errorf("Round trip of %f dB drifted to %f", db, got)
		}
	}
}

func TestDbToLinearFloor(t *testing.T) {
	if got := DbToLinear(MinDB); got != 0 {
		t.Errorf("Expected silence at the dB floor, got %f", got)
	}
	if got := DbToLinear(MinDB - 10); got != 0 {
		t.Errorf("Expected silence below the dB floor, got %f", got)
	}
}

func TestApply(t *testing.T) {
	src := []float32{1, -0.5, 0.25, 0}
	dst := make([]float32, 4)
	Apply(src, 2, dst)

	want := []float32{2, -1, 0.5, 0}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("Sample %d: got %f, want %f", i, dst[i], want[i])
		}
	}
}

func TestApplyInPlace(t *testing.T) {
	buf := []float32{1, -1}
	Apply(buf, 0.5, buf)
	if buf[0] != 0.5 || buf[1] != -0.5 {
		t.Errorf("In-place apply failed: %v", buf)
	}
}
