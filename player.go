package wavepack

// Sample is an output sample representation constructible from the
// engine's float32 mix. The audio-device layer picks the concrete type.
type Sample interface {
	float32 | float64 | int16
}

// fromFloat32 converts one mixed contribution into the output
// representation. The int16 form saturates at full scale; no other
// normalization happens at this layer.
func fromFloat32[S Sample](v float32) S {
	var s S
	switch out := any(&s).(type) {
	case *float32:
		*out = v
	case *float64:
		*out = float64(v)
	case *int16:
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		*out = int16(v * 32767)
	}
	return s
}

// Player fills sample buffers from a packed wave schedule. Between
// calls it owns the playback cursor and the set of currently sounding
// waves. Each Player/Pack pair is an independent single-threaded unit;
// concurrent sessions need separate instances.
type Player[S Sample] struct {
	pack    *Pack
	time    int64
	horizon int64
	current []TimedWave
}

// NewPlayer starts a playback session over pack. time is the first
// sample index to render; horizon is the index at which the schedule is
// considered over, even if unplayed waves remain.
func NewPlayer[S Sample](pack *Pack, time, horizon int64) *Player[S] {
	return &Player[S]{pack: pack, time: time, horizon: horizon}
}

// Play fills out with the sum, at each successive sample index, of
// every live wave's evaluation. It advances in bursts bounded by the
// next change to the live set, so cost scales with waves changing
// state, not with schedule size.
//
// On success both results are nil. When the schedule runs out before
// the buffer is full, rest is the untouched unwritten tail of out and
// resume holds the re-serialized remaining schedule; the Player must
// not be used again, but a new session over resume continues exactly
// where this one stopped.
func (p *Player[S]) Play(out []S) (rest []S, resume *Packer) {
	current := p.current
	p.current = nil
	buffer := out
	for {
		next, wakeup, packer := p.pack.depositCurrent(current, p.time, p.horizon)
		if packer != nil {
			return buffer, packer
		}
		current = next

		// The live set stays valid until wakeup; write as much of the
		// buffer as that span allows.
		cut := int64(len(buffer))
		if span := wakeup - p.time; span < cut {
			cut = span
		}
		working := buffer[:cut]
		buffer = buffer[cut:]
		start := p.time
		p.time += cut

		for i := range working {
			var sum float32
			for _, tw := range current {
				sum += tw.Eval(start + int64(i))
			}
			working[i] = fromFloat32[S](sum)
		}
		if len(buffer) == 0 {
			p.current = current
			return nil, nil
		}
	}
}

// CurrentTime returns the absolute sample index of the next sample the
// player will write.
func (p *Player[S]) CurrentTime() int64 { return p.time }
