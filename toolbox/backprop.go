package toolbox

import (
	"fmt"
	"slices"
)

// Gradients holds the cost gradients for one non-input layer.
//
// The gradients follow the direction that moves the output toward the
// expected vector: they are the negative of the derivative of
// SquaredErrorCost, so GradientDescent adds them.
type Gradients struct {
	W *AF32 // Shape (size(l+1), size(l)), same as the layer weights
	B *AF32 // Shape (size(l+1)), same as the layer biases
}

// SquaredErrorCost is Σ (expected_j - actual_j)².
func SquaredErrorCost(expected, actual *AF32) float32 {
	if !slices.Equal(expected.Shape, actual.Shape) {
		panic(fmt.Sprintf("cost: expected.Shape=%v != actual.Shape=%v", expected.Shape, actual.Shape))
	}
	var cost float32
	for j := 0; j < len(expected.V); j++ {
		diff := expected.V[j] - actual.V[j]
		cost += diff * diff
	}
	return cost
}

// Backpropagate computes the per-layer gradients of SquaredErrorCost for the
// activations produced by Forward.  The result is aligned with weights:
// gradients[l] corresponds to weights[l] and the matching bias vector.
//
// weights (input) are the layer weights.  len(weights)+1 == len(activations)
// activations (input) are the full output of Forward
// expected (input) is the target output.  Same shape as the last activation.
//
// Backpropagate does not modify its arguments.
func Backpropagate(weights, activations []*AF32, expected *AF32) ([]Gradients, error) {
	if err := checkBackpropShapes(weights, activations, expected); err != nil {
		return nil, err
	}

	dcdzs := costGradientsWrtZ(weights, activations, expected)
	return gradientsFromDcdz(dcdzs, activations), nil
}

// Backpropagate runs Backpropagate with the network's weights.
func (net *Network) Backpropagate(activations []*AF32, expected *AF32) ([]Gradients, error) {
	return Backpropagate(net.Weights, activations, expected)
}

// costGradientsWrtZ returns dC/dz for every non-input layer, from the output
// layer back to the first hidden layer.
func costGradientsWrtZ(weights, activations []*AF32, expected *AF32) []*AF32 {
	last := len(activations) - 1
	outputs := activations[last]

	// dC/da at the output: 2 (expected - actual)
	dcda := AF32Copy(outputs)
	for j := 0; j < len(outputs.V); j++ {
		dcda.V[j] = 2 * (expected.V[j] - outputs.V[j])
	}

	dcdzs := make([]*AF32, 0, len(weights))
	dcdzs = append(dcdzs, dcdzFromDcda(dcda, outputs))

	for layer := last - 1; layer >= 1; layer-- {
		// weights[layer] carries activations[layer] into layer+1, so its
		// column u holds the outgoing weights of unit u.
		nextDcdz := dcdzs[len(dcdzs)-1]
		dcda := AF32Copy(activations[layer])
		AF32MulVecT(weights[layer], nextDcdz, dcda)
		dcdzs = append(dcdzs, dcdzFromDcda(dcda, activations[layer]))
	}

	return dcdzs
}

// dcdzFromDcda computes dC/da ⊙ da/dz, reusing dcda as storage.
func dcdzFromDcda(dcda, a *AF32) *AF32 {
	dadz := AF32Copy(a)
	AF32Map(a, dadz, SigmoidDerivative)
	AF32MulElem(dcda, dadz, dcda)
	return dcda
}

// gradientsFromDcdz turns the back-to-front dC/dz list into front-to-back
// per-layer gradients.
func gradientsFromDcdz(dcdzs []*AF32, activations []*AF32) []Gradients {
	last := len(activations) - 1
	gradients := make([]Gradients, 0, len(dcdzs))
	for k, dcdz := range dcdzs {
		// dcdz belongs to activation last-k; its incoming activations are one
		// layer earlier.
		from := activations[last-k-1]
		w := MakeAF32(dcdz.Len(), from.Len())
		AF32Outer(dcdz, from, w)
		gradients = append(gradients, Gradients{
			W: w,
			B: AF32Clone(dcdz),
		})
	}
	slices.Reverse(gradients)
	return gradients
}

func checkBackpropShapes(weights, activations []*AF32, expected *AF32) error {
	if len(weights) == 0 {
		return fmt.Errorf("%w: network has no layers", ErrShapeMismatch)
	}
	if len(activations) != len(weights)+1 {
		return fmt.Errorf("%w: %d activations for %d weight matrices, want %d", ErrShapeMismatch, len(activations), len(weights), len(weights)+1)
	}
	for k, a := range activations {
		if !a.IsVector() {
			return fmt.Errorf("%w: activation %d shape %v is not a vector", ErrShapeMismatch, k, a.Shape)
		}
	}
	for l, w := range weights {
		if err := checkLayerShape(l, w, activations[l].Len()); err != nil {
			return err
		}
		if w.Shape[0] != activations[l+1].Len() {
			return fmt.Errorf("%w: layer %d weight rows %d != activation %d length %d", ErrShapeMismatch, l, w.Shape[0], l+1, activations[l+1].Len())
		}
	}

	outputs := activations[len(activations)-1]
	if !expected.IsVector() || expected.Len() != outputs.Len() {
		return fmt.Errorf("%w: expected shape %v != output shape %v", ErrShapeMismatch, expected.Shape, outputs.Shape)
	}

	return nil
}
