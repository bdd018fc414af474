package wavepack

import "math"

const tau = 2 * math.Pi

// Func is anything evaluable as a scalar function of time. Polynomials,
// waves, and any caller-supplied curve type all qualify.
type Func interface {
	Eval(t float32) float32
}

// Poly is a power-series polynomial: coefficient i multiplies t^i.
// Because Poly is a plain slice, sub-ranges of a shared coefficient
// array work as polynomials without copying.
//
// A Poly must hold at least one coefficient. This is not checked at
// runtime; an empty Poly evaluates to 0.
type Poly []float32

// Eval evaluates the series at t. A single coefficient is a constant,
// regardless of t.
func (p Poly) Eval(t float32) float32 {
	if len(p) == 1 {
		return p[0]
	}
	var sum float32
	term := float32(1)
	for _, c := range p {
		sum += c * term
		term *= t
	}
	return sum
}

// Derive returns the derivative polynomial, one degree lower. The
// derivative of a constant is empty.
func (p Poly) Derive() Poly {
	if len(p) <= 1 {
		return Poly{}
	}
	d := make(Poly, len(p)-1)
	for i, c := range p[1:] {
		d[i] = c * float32(i+1)
	}
	return d
}

// Scale returns the polynomial with every coefficient multiplied by k,
// i.e. k*p(t).
func (p Poly) Scale(k float32) Poly {
	out := make(Poly, len(p))
	for i, c := range p {
		out[i] = c * k
	}
	return out
}

// Stretch returns the polynomial on a stretched time axis: the result
// evaluated at t equals p evaluated at t/stretch.
func (p Poly) Stretch(stretch float32) Poly {
	out := make(Poly, len(p))
	term := float32(1)
	inv := 1 / stretch
	for i, c := range p {
		out[i] = c * term
		term *= inv
	}
	return out
}

// Wave is a sinusoid whose frequency and amplitude follow polynomial
// curves of time. Phase is a fixed offset in cycles. Frequency is in
// cycles per sample.
type Wave struct {
	Freq  Poly
	Amp   Poly
	Phase float32
}

// Eval returns Amp(t) * sin(2π * (t+Phase) * Freq(t)).
func (w Wave) Eval(t float32) float32 {
	return w.Amp.Eval(t) * float32(math.Sin(tau*float64(t+w.Phase)*float64(w.Freq.Eval(t))))
}

// TimedWave is a Wave active on the half-open sample window
// [Start, End). The wave runs on a local clock: sample Start maps to
// t=0.
type TimedWave struct {
	Start int64
	End   int64
	Wave  Wave
}

// Eval evaluates the wave at an absolute sample index. The caller is
// expected to stay inside [Start, End); nothing clamps the window here.
func (tw TimedWave) Eval(time int64) float32 {
	return tw.Wave.Eval(float32(time - tw.Start))
}
