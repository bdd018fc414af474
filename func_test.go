package wavepack

import (
	"math"
	"testing"
)

func closeTo(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-6
}

func TestPolyEvalPowerSeries(t *testing.T) {
	p := Poly{1, 2, 3}
	if got := p.Eval(2); got != 17 {
		t.Fatalf("eval(2) = %v, want 17", got)
	}
	if got := p.Eval(0); got != 1 {
		t.Fatalf("eval(0) = %v, want 1", got)
	}
}

func TestPolySingleCoefficientIsConstant(t *testing.T) {
	p := Poly{5}
	for _, in := range []float32{-3, 0, 0.5, 1000} {
		if got := p.Eval(in); got != 5 {
			t.Fatalf("eval(%v) = %v, want 5", in, got)
		}
	}
}

func TestPolyDerive(t *testing.T) {
	p := Poly{3, 2, 1}
	d := p.Derive()
	if len(d) != 2 || d[0] != 2 || d[1] != 2 {
		t.Fatalf("derive = %v, want [2 2]", d)
	}
	if c := (Poly{7}).Derive(); len(c) != 0 {
		t.Fatalf("derivative of constant = %v, want empty", c)
	}
}

func TestPolyScale(t *testing.T) {
	p := Poly{1, 2}.Scale(3)
	if p[0] != 3 || p[1] != 6 {
		t.Fatalf("scale = %v, want [3 6]", p)
	}
}

func TestPolyStretch(t *testing.T) {
	p := Poly{1, 1, 1}
	s := p.Stretch(2)
	if s[0] != 1 || s[1] != 0.5 || s[2] != 0.25 {
		t.Fatalf("stretch = %v, want [1 0.5 0.25]", s)
	}
	// Stretching by 2 halves the time axis: s(2) == p(1).
	if got, want := s.Eval(2), p.Eval(1); !closeTo(got, want) {
		t.Fatalf("stretched eval(2) = %v, want %v", got, want)
	}
}

func TestWaveEval(t *testing.T) {
	w := Wave{Freq: Poly{1}, Amp: Poly{0.25}, Phase: 0.25}
	// sin(2π·0.25) = 1 at the phase peak.
	if got := w.Eval(0); !closeTo(got, 0.25) {
		t.Fatalf("eval(0) = %v, want 0.25", got)
	}
	// Amplitude curve scales the sinusoid.
	ramp := Wave{Freq: Poly{1}, Amp: Poly{0, 1}, Phase: 0.25}
	if got := ramp.Eval(2); !closeTo(got, 2) {
		t.Fatalf("ramped eval(2) = %v, want 2", got)
	}
}

func TestTimedWaveRunsOnLocalClock(t *testing.T) {
	w := Wave{Freq: Poly{0.1, 0.01}, Amp: Poly{0.5, 0.25}, Phase: 0.125}
	tw := TimedWave{Start: 10, End: 20, Wave: w}
	for i := int64(0); i < 10; i++ {
		if got, want := tw.Eval(10+i), w.Eval(float32(i)); got != want {
			t.Fatalf("eval(%d) = %v, want %v", 10+i, got, want)
		}
	}
}
