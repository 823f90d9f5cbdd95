package audio

import "errors"

var errSourceNotWritable = errors.New("source is not open for writing")

// deinterleave scatters n frames of interleaved integer samples into a
// channel-major buffer, scaling by the source bit depth. Frames beyond n are
// zeroed.
func deinterleave(data []int, n int, bitDepth int, buf *Buffer) {
	scale := float32(int64(1) << (bitDepth - 1))
	numChannels := buf.NumChannels()
	blocksize := buf.Blocksize()
	for frame := 0; frame < blocksize; frame++ {
		for ch := 0; ch < numChannels; ch++ {
			if frame < n {
				buf.Data[ch][frame] = float32(data[frame*numChannels+ch]) / scale
			} else {
				buf.Data[ch][frame] = 0
			}
		}
	}
}

// interleave gathers a channel-major buffer into interleaved integer samples
// at the given bit depth, clamping to the representable range.
func interleave(buf *Buffer, bitDepth int, data []int) {
	scale := float64(int64(1) << (bitDepth - 1))
	max := int(scale) - 1
	min := -int(scale)
	numChannels := buf.NumChannels()
	blocksize := buf.Blocksize()
	for frame := 0; frame < blocksize; frame++ {
		for ch := 0; ch < numChannels; ch++ {
			sample := int(float64(buf.Data[ch][frame]) * scale)
			if sample > max {
				sample = max
			} else if sample < min {
				sample = min
			}
			data[frame*numChannels+ch] = sample
		}
	}
}
