package bowling

// Accumulator converts variable frame times into whole fixed steps.
type Accumulator struct {
	step       float64
	stallGuard float64
	remainder  float64
}

// NewAccumulator creates an empty accumulator. Frames lasting stallGuard
// seconds or longer are dropped instead of being caught up.
func NewAccumulator(step, stallGuard float64) Accumulator {
	return Accumulator{step: step, stallGuard: stallGuard}
}

// Advance adds dtime and calls fn once per whole step now held, returning
// the number of steps taken. The remainder stays in [0, step).
// Negative and stalled frames leave the remainder untouched.
func (a *Accumulator) Advance(dtime float64, fn func(h float64)) int {
	if dtime < 0 || dtime >= a.stallGuard {
		return 0
	}

	a.remainder += dtime
	n := 0
	for a.remainder >= a.step {
		fn(a.step)
		a.remainder -= a.step
		n++
	}
	return n
}

// Remainder returns the simulated time not yet consumed by a step.
func (a Accumulator) Remainder() float64 {
	return a.remainder
}

// Step returns the fixed step size.
func (a Accumulator) Step() float64 {
	return a.step
}
