package scroll

import "math"

// EasingFunc maps normalized progress in [0,1] to eased progress in [0,1].
type EasingFunc func(progress float64) float64

// EaseLinear moves at constant speed.
var EaseLinear EasingFunc = func(t float64) float64 { return t }

// EaseIn returns progress^(1+2*sharpness). A sharpness of 0 is linear.
func EaseIn(sharpness float64) EasingFunc {
	exp := 1 + 2*sharpness
	return func(t float64) float64 {
		return math.Pow(clampUnit(t), exp)
	}
}

// EaseOut returns 1-(1-progress)^(1+2*sharpness). A sharpness of 0 is linear.
func EaseOut(sharpness float64) EasingFunc {
	exp := 1 + 2*sharpness
	return func(t float64) float64 {
		return 1 - math.Pow(1-clampUnit(t), exp)
	}
}

// EaseInOut splits progress at the midpoint: the first half accelerates with
// EaseIn(in), the second half decelerates with EaseOut(out).
func EaseInOut(in, out float64) EasingFunc {
	easeIn, easeOut := EaseIn(in), EaseOut(out)
	return func(t float64) float64 {
		t = clampUnit(t)
		if t < 0.5 {
			return easeIn(2*t) / 2
		}
		return easeOut(2*(t-0.5))/2 + 0.5
	}
}

func clampUnit(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	}
	return t
}
