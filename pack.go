package wavepack

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsortedTimings is returned by Pack when timings are not
	// non-decreasing by start.
	ErrUnsortedTimings = errors.New("wavepack: timings not sorted by start")
	// ErrRunMismatch is returned when run lengths do not exactly cover
	// their coefficient array.
	ErrRunMismatch = errors.New("wavepack: run lengths do not cover coefficients")
	// ErrParallelArrays is returned when the six packed arrays disagree
	// on the wave count.
	ErrParallelArrays = errors.New("wavepack: parallel array lengths differ")
)

// Timing is one wave's active sample window. End is exclusive.
type Timing struct {
	Start int64
	End   int64
}

// Packer accumulates timed waves into six parallel arrays: one timing,
// frequency run, amplitude run, and phase per wave, with all
// coefficients flattened into two shared arrays. This is also the
// interchange layout when schedules are precomputed and loaded.
//
// Run lengths are single bytes: no wave may carry more than 255
// frequency or 255 amplitude coefficients.
//
// Appending never validates; Pack checks the invariants once.
type Packer struct {
	Timings  []Timing
	FreqCoef []float32
	FreqRuns []byte
	AmpCoef  []float32
	AmpRuns  []byte
	Phases   []float32
}

// Extend appends each wave's timing, flattened coefficients, and phase.
func (p *Packer) Extend(waves ...TimedWave) {
	for _, tw := range waves {
		p.Timings = append(p.Timings, Timing{Start: tw.Start, End: tw.End})
		p.FreqCoef = append(p.FreqCoef, tw.Wave.Freq...)
		p.FreqRuns = append(p.FreqRuns, byte(len(tw.Wave.Freq)))
		p.AmpCoef = append(p.AmpCoef, tw.Wave.Amp...)
		p.AmpRuns = append(p.AmpRuns, byte(len(tw.Wave.Amp)))
		p.Phases = append(p.Phases, tw.Wave.Phase)
	}
}

// BulkGenerate appends already-grouped data: timing i, frequency group
// i, amplitude group i, and phase i describe one wave. Useful for
// programmatic generation without building intermediate TimedWave
// values.
func (p *Packer) BulkGenerate(timings []Timing, freqs, amps [][]float32, phases []float32) {
	p.Timings = append(p.Timings, timings...)
	for _, group := range freqs {
		p.FreqCoef = append(p.FreqCoef, group...)
		p.FreqRuns = append(p.FreqRuns, byte(len(group)))
	}
	for _, group := range amps {
		p.AmpCoef = append(p.AmpCoef, group...)
		p.AmpRuns = append(p.AmpRuns, byte(len(group)))
	}
	p.Phases = append(p.Phases, phases...)
}

// Len returns the number of packed waves.
func (p *Packer) Len() int { return len(p.Timings) }

// Span returns the sample range covered by the schedule: the earliest
// start and the latest end. Both are 0 when the packer is empty.
func (p *Packer) Span() (start, end int64) {
	if len(p.Timings) == 0 {
		return 0, 0
	}
	start, end = p.Timings[0].Start, p.Timings[0].End
	for _, t := range p.Timings[1:] {
		if t.Start < start {
			start = t.Start
		}
		if t.End > end {
			end = t.End
		}
	}
	return start, end
}

// Pack freezes the packer into a read-only scheduling view. The view
// shares the packer's arrays; mutating the packer while the view is in
// use invalidates it.
func (p *Packer) Pack() (*Pack, error) {
	return NewPack(p.Timings, p.FreqCoef, p.FreqRuns, p.AmpCoef, p.AmpRuns, p.Phases)
}

// multiPoly reinterprets one flat coefficient array plus a parallel
// run-length array as a sequence of independent coefficient groups.
// The decoding cursor is single-pass; build a new multiPoly to restart.
type multiPoly struct {
	coeffs []float32
	runs   []byte
}

func newMultiPoly(coeffs []float32, runs []byte) (multiPoly, error) {
	total := 0
	for _, r := range runs {
		total += int(r)
	}
	if total != len(coeffs) {
		return multiPoly{}, fmt.Errorf("%w: runs cover %d of %d", ErrRunMismatch, total, len(coeffs))
	}
	return multiPoly{coeffs: coeffs, runs: runs}, nil
}

// next consumes one run and returns its coefficient group as a view
// into the shared array.
func (m *multiPoly) next() (Poly, bool) {
	if len(m.runs) == 0 {
		return nil, false
	}
	n := int(m.runs[0])
	group := Poly(m.coeffs[:n:n])
	m.coeffs = m.coeffs[n:]
	m.runs = m.runs[1:]
	return group, true
}

// Pack is a read-only scheduling view over packed timed waves. The scan
// is monotonic: once a wave has been handed to a live set it is never
// visited again, and already-retired waves are never rescanned.
//
// A Pack is a single-session resource. The exhaustion path of
// depositCurrent consumes it; afterwards the Pack behaves as empty.
type Pack struct {
	timings []Timing
	freqs   multiPoly
	amps    multiPoly
	phases  []float32
}

// NewPack validates the six parallel arrays and builds a scheduling
// view sharing them. It returns no view when the wave counts disagree,
// a run-length sum misses its coefficient array, or timings are not
// sorted by start.
func NewPack(timings []Timing, freqCoef []float32, freqRuns []byte, ampCoef []float32, ampRuns []byte, phases []float32) (*Pack, error) {
	if len(timings) != len(freqRuns) || len(timings) != len(ampRuns) || len(timings) != len(phases) {
		return nil, fmt.Errorf("%w: %d timings, %d freq runs, %d amp runs, %d phases",
			ErrParallelArrays, len(timings), len(freqRuns), len(ampRuns), len(phases))
	}
	for i := 1; i < len(timings); i++ {
		if timings[i-1].Start > timings[i].Start {
			return nil, fmt.Errorf("%w: start %d follows %d", ErrUnsortedTimings, timings[i].Start, timings[i-1].Start)
		}
	}
	freqs, err := newMultiPoly(freqCoef, freqRuns)
	if err != nil {
		return nil, fmt.Errorf("frequency: %w", err)
	}
	amps, err := newMultiPoly(ampCoef, ampRuns)
	if err != nil {
		return nil, fmt.Errorf("amplitude: %w", err)
	}
	return &Pack{timings: timings, freqs: freqs, amps: amps, phases: phases}, nil
}

// sample appends to dst every not-yet-started wave whose Start is at or
// before until, in packed order, advancing the cursor past each. The
// first wave starting later stays for the next call.
func (p *Pack) sample(dst []TimedWave, until int64) []TimedWave {
	for len(p.timings) > 0 && p.timings[0].Start <= until {
		freq, ok := p.freqs.next()
		if !ok {
			break
		}
		amp, ok := p.amps.next()
		if !ok {
			break
		}
		dst = append(dst, TimedWave{
			Start: p.timings[0].Start,
			End:   p.timings[0].End,
			Wave:  Wave{Freq: freq, Amp: amp, Phase: p.phases[0]},
		})
		p.timings = p.timings[1:]
		p.phases = p.phases[1:]
	}
	return dst
}

// unravel folds the live set and all still-unscanned packed data into a
// fresh owned Packer, so a later session can resume the schedule after
// this view's backing arrays are gone.
func (p *Pack) unravel(live []TimedWave) *Packer {
	packer := &Packer{}
	packer.Extend(live...)
	packer.Timings = append(packer.Timings, p.timings...)
	packer.FreqCoef = append(packer.FreqCoef, p.freqs.coeffs...)
	packer.FreqRuns = append(packer.FreqRuns, p.freqs.runs...)
	packer.AmpCoef = append(packer.AmpCoef, p.amps.coeffs...)
	packer.AmpRuns = append(packer.AmpRuns, p.amps.runs...)
	packer.Phases = append(packer.Phases, p.phases...)
	return packer
}

// depositCurrent advances the live set to time: waves whose End has
// passed are retired in place, newly started waves are pulled in, and
// the returned wakeup is the next sample index at which the live set
// changes again (a death or a birth), capped at maxWakeup.
//
// When time has already reached maxWakeup the view is consumed instead:
// the trimmed live set and every unscanned wave are re-serialized into
// the returned resume Packer, and this Pack must not be used again.
func (p *Pack) depositCurrent(live []TimedWave, time, maxWakeup int64) (next []TimedWave, wakeup int64, resume *Packer) {
	n := 0
	for _, tw := range live {
		if tw.End > time {
			live[n] = tw
			n++
		}
	}
	live = live[:n]

	if time >= maxWakeup {
		captured := *p
		*p = Pack{}
		return nil, 0, captured.unravel(live)
	}

	live = p.sample(live, time)

	wakeup = maxWakeup
	for _, tw := range live {
		if tw.End < wakeup {
			wakeup = tw.End
		}
	}
	if len(p.timings) > 0 && p.timings[0].Start < wakeup {
		wakeup = p.timings[0].Start
	}
	return live, wakeup, nil
}
