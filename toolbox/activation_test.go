package toolbox

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestSigmoid(t *testing.T) {
	testCases := []struct {
		z    float32
		want float32
	}{
		{z: 0, want: 0.5},
		{z: 2, want: 0.8807971},
		{z: -2, want: 0.11920292},
		{z: -200, want: 0},
		{z: 200, want: 1},
	}

	for _, tc := range testCases {
		got := Sigmoid(tc.z)
		if math32.Abs(got-tc.want) > 1e-6 {
			t.Errorf("Sigmoid(%v) = %v, want %v", tc.z, got, tc.want)
		}
	}
}

func TestSigmoidDerivativeTakesActivation(t *testing.T) {
	for _, z := range []float32{-3, -0.5, 0, 0.25, 4} {
		a := Sigmoid(z)
		got := SigmoidDerivative(a)

		h := float32(1e-2)
		want := (Sigmoid(z+h) - Sigmoid(z-h)) / (2 * h)

		if math32.Abs(got-want) > 1e-4 {
			t.Errorf("SigmoidDerivative(Sigmoid(%v)) = %v, want %v", z, got, want)
		}
	}
}
