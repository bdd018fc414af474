package wavepack

import (
	"encoding/binary"
	"math"
)

// RenderSamples plays a packed schedule offline into a fresh buffer of
// n samples, starting at sample index from with the given horizon. When
// the schedule exhausts before the buffer fills, the tail stays silent
// and the re-serialized remainder is returned alongside the samples.
func RenderSamples(packer *Packer, n int, from, horizon int64) ([]float32, *Packer, error) {
	pack, err := packer.Pack()
	if err != nil {
		return nil, nil, err
	}
	out := make([]float32, n)
	player := NewPlayer[float32](pack, from, horizon)
	_, resume := player.Play(out)
	return out, resume, nil
}

// EncodeWAVFloat32LE wraps samples in a WAV container (IEEE float,
// 32-bit little endian).
func EncodeWAVFloat32LE(samples []float32, sampleRate int, channels int) []byte {
	dataSize := len(samples) * 4
	out := wavHeader(3, 32, dataSize, sampleRate, channels)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(out[44+i*4:], math.Float32bits(s))
	}
	return out
}

// EncodeWAVInt16LE wraps samples in a WAV container (PCM, 16-bit little
// endian).
func EncodeWAVInt16LE(samples []int16, sampleRate int, channels int) []byte {
	dataSize := len(samples) * 2
	out := wavHeader(1, 16, dataSize, sampleRate, channels)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[44+i*2:], uint16(s))
	}
	return out
}

func wavHeader(format uint16, bits int, dataSize, sampleRate, channels int) []byte {
	bytesPer := bits / 8
	byteRate := sampleRate * channels * bytesPer
	blockAlign := channels * bytesPer
	chunkSize := 36 + dataSize
	out := make([]byte, 44+dataSize)
	copy(out[0:], []byte("RIFF"))
	binary.LittleEndian.PutUint32(out[4:], uint32(chunkSize))
	copy(out[8:], []byte("WAVE"))
	copy(out[12:], []byte("fmt "))
	binary.LittleEndian.PutUint32(out[16:], 16)
	binary.LittleEndian.PutUint16(out[20:], format)
	binary.LittleEndian.PutUint16(out[22:], uint16(channels))
	binary.LittleEndian.PutUint32(out[24:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:], uint32(byteRate))
	binary.LittleEndian.PutUint16(out[32:], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:], uint16(bits))
	copy(out[36:], []byte("data"))
	binary.LittleEndian.PutUint32(out[40:], uint32(dataSize))
	return out
}
