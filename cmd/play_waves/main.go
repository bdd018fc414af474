package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	wavepack "github.com/cbegin/wavepack-go"
)

func main() {
	var (
		sampleRate  = flag.Int("sample-rate", 48000, "output sample rate")
		notes       = flag.Int("notes", 8, "number of arpeggio notes")
		noteSeconds = flag.Float64("note-seconds", 0.5, "duration of each note")
		overlap     = flag.Float64("overlap", 0.5, "fraction of a note overlapping the next")
		baseHz      = flag.Float64("base-hz", 220, "frequency of the first note")
		gliss       = flag.Float64("gliss", 0, "per-note pitch drift in Hz over the note's life")
		amp         = flag.Float64("amp", 0.2, "peak amplitude per note")
		outPath     = flag.String("out", "", "write a WAV file instead of playing live")
	)
	flag.Parse()

	packer := buildSchedule(*sampleRate, *notes, *noteSeconds, *overlap, *baseHz, *gliss, *amp)
	_, end := packer.Span()

	if *outPath != "" {
		samples, resume, err := wavepack.RenderSamples(packer, int(end), 0, end)
		if err != nil {
			log.Fatal(err)
		}
		if resume != nil {
			log.Fatalf("schedule exhausted early with %d waves left", resume.Len())
		}
		wav := wavepack.EncodeWAVFloat32LE(samples, *sampleRate, 1)
		if err := os.WriteFile(*outPath, wav, 0o644); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("wrote %d samples to %s\n", len(samples), *outPath)
		return
	}

	pack, err := packer.Pack()
	if err != nil {
		log.Fatal(err)
	}
	player := wavepack.NewPlayer[float32](pack, 0, end)
	stream, err := wavepack.NewStreamPlayer(*sampleRate, player)
	if err != nil {
		log.Fatal(err)
	}
	stream.Play()
	for stream.IsPlaying() {
		time.Sleep(50 * time.Millisecond)
	}
	if err := stream.Stop(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("playback completed")
}

// buildSchedule packs an ascending arpeggio: each note is a sinusoid
// with a linear fade-out and an optional linear pitch drift, starting
// before the previous note has finished.
func buildSchedule(sampleRate, notes int, noteSeconds, overlap, baseHz, gliss, amp float64) *wavepack.Packer {
	noteLen := int64(noteSeconds * float64(sampleRate))
	step := int64(float64(noteLen) * (1 - overlap))
	if step < 1 {
		step = 1
	}
	fade := wavepack.Poly{1, -1}.Stretch(float32(noteLen))

	packer := &wavepack.Packer{}
	for i := 0; i < notes; i++ {
		hz := baseHz * math.Pow(2, float64(i)/12*3) // minor-third steps
		freq := wavepack.Poly{
			float32(hz / float64(sampleRate)),
			float32(gliss / float64(sampleRate) / float64(noteLen)),
		}
		start := int64(i) * step
		packer.Extend(wavepack.TimedWave{
			Start: start,
			End:   start + noteLen,
			Wave: wavepack.Wave{
				Freq: freq,
				Amp:  fade.Scale(float32(amp)),
			},
		})
	}
	return packer
}
