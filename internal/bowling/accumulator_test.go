package bowling

import (
	"math"
	"testing"
)

func TestAccumulatorAdvance(t *testing.T) {
	tests := []struct {
		name   string
		dtimes []float64
		steps  []int
	}{
		{"one step per frame", []float64{frame, frame, frame}, []int{1, 1, 1}},
		{"short frames carry over", []float64{0.01, 0.01, 0.01}, []int{0, 1, 0}},
		{"hitch catches up", []float64{0.105}, []int{6}},
		{"just under the stall guard", []float64{0.999}, []int{59}},
		{"stall is dropped", []float64{1.0, 2.5}, []int{0, 0}},
		{"negative frame is dropped", []float64{-0.5}, []int{0}},
		{"zero frame", []float64{0}, []int{0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			acc := NewAccumulator(frame, 1.0)
			for i, dt := range tc.dtimes {
				calls := 0
				n := acc.Advance(dt, func(h float64) {
					if h != frame {
						t.Errorf("step size = %v, expected %v", h, frame)
					}
					calls++
				})
				if n != tc.steps[i] || calls != n {
					t.Errorf("frame %d: Advance(%v) = %d (%d calls), expected %d", i, dt, n, calls, tc.steps[i])
				}
				if r := acc.Remainder(); r < 0 || r >= frame {
					t.Errorf("frame %d: remainder %v outside [0, h)", i, r)
				}
			}
		})
	}
}

func TestAccumulatorStallKeepsRemainder(t *testing.T) {
	acc := NewAccumulator(frame, 1.0)
	acc.Advance(0.01, func(float64) {})
	before := acc.Remainder()

	if n := acc.Advance(1.0, func(float64) { t.Error("stalled frame must not step") }); n != 0 {
		t.Errorf("Advance(1.0) = %d, expected 0", n)
	}
	if acc.Remainder() != before {
		t.Errorf("remainder changed across a stall: %v -> %v", before, acc.Remainder())
	}
}

func TestAccumulatorConservation(t *testing.T) {
	dtimes := []float64{0.016, 0.017, 0.033, 0.001, 0.25, 0, 0.0166, 0.9, 0.05, 0.012}

	acc := NewAccumulator(frame, 1.0)
	var total float64
	steps := 0
	for _, dt := range dtimes {
		total += dt
		steps += acc.Advance(dt, func(float64) {})
	}

	consumed := float64(steps)*frame + acc.Remainder()
	if math.Abs(consumed-total) > 1e-9 {
		t.Errorf("steps*h + remainder = %v, expected %v", consumed, total)
	}
}

func TestAccumulatorDeterminism(t *testing.T) {
	dtimes := []float64{0.02, 0.013, 0.05, 0.007, 0.4, 0.016, 0.0175}

	run := func() []int {
		acc := NewAccumulator(frame, 1.0)
		counts := make([]int, len(dtimes))
		for i, dt := range dtimes {
			counts[i] = acc.Advance(dt, func(float64) {})
		}
		return counts
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("frame %d: %d steps vs %d steps", i, a[i], b[i])
		}
	}
}
