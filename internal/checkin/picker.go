package checkin

import "math/rand/v2"

// Picker selects an index in [0, n).
type Picker interface {
	Pick(n int) int
}

type PickerFunc func(n int) int

func (f PickerFunc) Pick(n int) int { return f(n) }

// UniformPicker draws each index with equal probability, independently per call.
var UniformPicker Picker = PickerFunc(rand.IntN)
