// Package wav encodes a rendered sample stream as a canonical mono,
// 16-bit PCM RIFF/WAVE file. It is a standalone utility, not part of
// the engine's playback path -- per the engine's own framing, WAV
// export is a trivial external serializer of whatever sample stream
// the caller already rendered.
package wav

import "encoding/binary"

const (
	headerSize  = 44
	bitsPerSamp = 16
	channels    = 1
	formatPCM   = 1
)

// Encode renders samples (each expected in [-1,1], but clamped
// defensively) as a little-endian RIFF/WAVE file: mono, 16-bit PCM,
// format tag 1, at the given sample rate.
func Encode(samples []float64, sampleRate int) []byte {
	dataSize := len(samples) * 2
	byteRate := sampleRate * channels * (bitsPerSamp / 8)
	blockAlign := channels * (bitsPerSamp / 8)
	chunkSize := headerSize - 8 + dataSize

	out := make([]byte, headerSize+dataSize)
	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], uint32(chunkSize))
	copy(out[8:12], "WAVE")
	copy(out[12:16], "fmt ")
	binary.LittleEndian.PutUint32(out[16:20], 16)
	binary.LittleEndian.PutUint16(out[20:22], formatPCM)
	binary.LittleEndian.PutUint16(out[22:24], channels)
	binary.LittleEndian.PutUint32(out[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(out[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:36], bitsPerSamp)
	copy(out[36:40], "data")
	binary.LittleEndian.PutUint32(out[40:44], uint32(dataSize))

	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[headerSize+i*2:], uint16(int16(clampSample(s)*32767)))
	}
	return out
}

func clampSample(s float64) float64 {
	if s > 1 {
		return 1
	}
	if s < -1 {
		return -1
	}
	return s
}

// RenderVenue drains a sample-producing callback (typically
// Venue.GetSample bound to channel 0) at sampleRate until stop fires or
// maxSeconds elapses, whichever is first, and returns the rendered
// samples ready for Encode.
func RenderVenue(sample func(delta float64) float64, sampleRate int, maxSeconds float64, stop func() bool) []float64 {
	delta := 1.0 / float64(sampleRate)
	maxFrames := int(maxSeconds * float64(sampleRate))
	out := make([]float64, 0, maxFrames)
	for i := 0; i < maxFrames; i++ {
		out = append(out, sample(delta))
		if stop != nil && stop() {
			break
		}
	}
	return out
}
