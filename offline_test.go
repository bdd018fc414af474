package wavepack

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestRenderSamplesScenario(t *testing.T) {
	packer := packerFromWindows([]Timing{{0, 6}, {5, 8}, {7, 9}, {8, 12}}, testWave())
	samples, resume, err := RenderSamples(packer, 7, 0, 11)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if resume != nil {
		t.Fatalf("unexpected exhaustion with %d waves left", resume.Len())
	}
	want := []float32{0.25, 0.25, 0.25, 0.25, 0.25, 0.5, 0.25}
	for i := range want {
		if !closeTo(samples[i], want[i]) {
			t.Fatalf("samples = %v, want %v", samples, want)
		}
	}
}

func TestRenderSamplesReportsExhaustion(t *testing.T) {
	packer := packerFromWindows([]Timing{{0, 6}, {5, 8}, {7, 9}, {8, 12}}, testWave())
	samples, resume, err := RenderSamples(packer, 12, 0, 8)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if resume == nil || resume.Len() != 2 {
		t.Fatalf("resume = %+v, want 2 remaining waves", resume)
	}
	for _, s := range samples[8:] {
		if s != 0 {
			t.Fatalf("tail not silent: %v", samples[8:])
		}
	}
}

func TestRenderSamplesRejectsInvalidPacker(t *testing.T) {
	packer := packerFromWindows([]Timing{{5, 8}, {0, 6}}, testWave())
	if _, _, err := RenderSamples(packer, 4, 0, 8); err == nil {
		t.Fatalf("expected construction error for unsorted timings")
	}
}

func TestEncodeWAVFloat32LE(t *testing.T) {
	samples := []float32{0, 0.5, -0.5}
	wav := EncodeWAVFloat32LE(samples, 48000, 1)
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		t.Fatalf("bad container tags")
	}
	if got := binary.LittleEndian.Uint16(wav[20:]); got != 3 {
		t.Fatalf("format tag = %d, want 3 (IEEE float)", got)
	}
	if got := binary.LittleEndian.Uint16(wav[34:]); got != 32 {
		t.Fatalf("bits = %d, want 32", got)
	}
	if got := binary.LittleEndian.Uint32(wav[40:]); got != uint32(len(samples)*4) {
		t.Fatalf("data size = %d, want %d", got, len(samples)*4)
	}
	for i, s := range samples {
		bits := binary.LittleEndian.Uint32(wav[44+i*4:])
		if math.Float32frombits(bits) != s {
			t.Fatalf("sample %d round-trip = %v, want %v", i, math.Float32frombits(bits), s)
		}
	}
}

func TestEncodeWAVInt16LE(t *testing.T) {
	samples := []int16{0, 32767, -32768}
	wav := EncodeWAVInt16LE(samples, 44100, 1)
	if got := binary.LittleEndian.Uint16(wav[20:]); got != 1 {
		t.Fatalf("format tag = %d, want 1 (PCM)", got)
	}
	if got := binary.LittleEndian.Uint16(wav[34:]); got != 16 {
		t.Fatalf("bits = %d, want 16", got)
	}
	if got := binary.LittleEndian.Uint32(wav[24:]); got != 44100 {
		t.Fatalf("sample rate = %d, want 44100", got)
	}
	for i, s := range samples {
		if got := int16(binary.LittleEndian.Uint16(wav[44+i*2:])); got != s {
			t.Fatalf("sample %d round-trip = %d, want %d", i, got, s)
		}
	}
}
