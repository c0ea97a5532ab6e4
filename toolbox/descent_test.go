package toolbox

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestGradientDescentAddsScaledGradient(t *testing.T) {
	r := rand.New(rand.NewSource(12345))
	top := Topology{InputSize: 3, HiddenSize: 4, OutputSize: 2, HiddenLayerCount: 1}
	net, err := MakeNetwork(top, r)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	before := net.Clone()

	gradients := make([]Gradients, top.NumLayers())
	for l := range gradients {
		gradients[l] = Gradients{
			W: AF32Copy(net.Weights[l]),
			B: AF32Copy(net.Biases[l]),
		}
		for i := range gradients[l].W.V {
			gradients[l].W.V[i] = 1
		}
	}

	net.GradientDescent(gradients, LearningParameters{LearningRate: 0.5})

	for l := range net.Weights {
		want := AF32Clone(before.Weights[l])
		for i := range want.V {
			want.V[i] += 0.5
		}
		if diff := cmp.Diff(net.Weights[l].V, want.V, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
			t.Errorf("Weights[%d] wrong after update; diff (-got +want)\n%s", l, diff)
		}
		// Zero bias gradients leave the biases alone.
		if diff := cmp.Diff(net.Biases[l].V, before.Biases[l].V); diff != "" {
			t.Errorf("Biases[%d] changed; diff (-got +want)\n%s", l, diff)
		}
	}
}

func TestGradientDescentPanicsOnMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("GradientDescent with mismatched gradients did not panic")
		}
	}()

	weights := []*AF32{MakeAF32(2, 2)}
	biases := []*AF32{MakeAF32(2)}
	gradients := []Gradients{{W: MakeAF32(2, 3), B: MakeAF32(2)}}
	GradientDescent(weights, biases, gradients, LearningParameters{LearningRate: 0.1})
}

func TestNewLearningParameters(t *testing.T) {
	if lp, err := NewLearningParameters(0.3); err != nil || lp.LearningRate != 0.3 {
		t.Errorf("NewLearningParameters(0.3) = %v, %v", lp, err)
	}

	for _, rate := range []float32{0, -0.1, float32(math.Inf(1)), float32(math.NaN())} {
		if _, err := NewLearningParameters(rate); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("NewLearningParameters(%v) error = %v, want ErrInvalidConfig", rate, err)
		}
	}
}
