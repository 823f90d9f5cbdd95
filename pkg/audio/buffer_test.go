package audio

import "testing"

func TestNewBufferShape(t *testing.T) {
	buf := NewBuffer(2, 512)

	if buf.NumChannels() != 2 {
		t.Errorf("Expected 2 channels, got %d", buf.NumChannels())
	}
	if buf.Blocksize() != 512 {
		t.Errorf("Expected blocksize 512, got %d", buf.Blocksize())
	}

	for ch := range buf.Data {
		for i, sample := range buf.Data[ch] {
			if sample != 0 {
				t.Fatalf("Expected zero-initialized buffer, found %f at [%d][%d]", sample, ch, i)
			}
		}
	}
}

func TestBufferClear(t *testing.T) {
	buf := NewBuffer(2, 16)
	for ch := range buf.Data {
		for i := range buf.Data[ch] {
			buf.Data[ch][i] = 0.5
		}
	}

	buf.Clear()

	for ch := range buf.Data {
		for i, sample := range buf.Data[ch] {
			if sample != 0 {
				t.Fatalf("Expected cleared buffer, found %f at [%d][%d]", sample, ch, i)
			}
		}
	}
}

func TestBufferCopyFrom(t *testing.T) {
	src := NewBuffer(2, 8)
	dst := NewBuffer(2, 8)
	for ch := range src.Data {
		for i := range src.Data[ch] {
			src.Data[ch][i] = float32(ch*8 + i)
		}
	}

	dst.CopyFrom(src)

	for ch := range dst.Data {
		for i := range dst.Data[ch] {
			if dst.Data[ch][i] != src.Data[ch][i] {
				t.Fatalf("Copy mismatch at [%d][%d]", ch, i)
			}
		}
	}
}
